// Copyright 2025 The OpenArtifacts Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package audit provides an in-memory append-only event log. One mutex
// guards the whole log: writers append and stamp the current time, readers
// get a snapshot sorted by timestamp.
package audit

import (
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one audit record.
type Event struct {
	ID        string            // Assigned on write when empty
	Timestamp time.Time         // Stamped on write
	Action    string            // What happened, e.g. "artifact.expand"
	Subject   string            // What it happened to
	Details   map[string]string // Free-form context
}

// Log is a mutex-guarded append-only event log. The zero value is ready to
// use.
type Log struct {
	mu     sync.Mutex
	events []Event
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Write appends a copy of the event, stamping the current time and, when
// the event carries none, a fresh ID. The stored event is returned.
func (l *Log) Write(event Event) Event {
	stored := event
	stored.Timestamp = time.Now()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Details = maps.Clone(event.Details)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, stored)
	return stored
}

// ReadAll returns a snapshot of every event, sorted by timestamp. Events
// with equal timestamps keep their append order.
func (l *Log) ReadAll() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := make([]Event, len(l.events))
	copy(snapshot, l.events)

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Timestamp.Before(snapshot[j].Timestamp)
	})
	return snapshot
}

// Len returns the number of events written so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
