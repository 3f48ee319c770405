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

// Package knowledge defines the read-only attribute store consumed by the
// interpolation core, together with an in-memory implementation.
//
// A store holds two kinds of data: scalar attributes (e.g. "os", "fqdn")
// and named groups of records (e.g. one record per user account). All name
// lookups are case-insensitive by convention; implementations lower-case
// keys on write and on read. An empty value is indistinguishable from an
// absent one: both report "not present".
package knowledge

import (
	"sort"
	"strings"
)

// Record is a single entry of a repeated group, exposing its fields by name.
type Record interface {
	// GetField returns the value of the named field. The boolean is false
	// when the field is absent or empty.
	GetField(name string) (string, bool)
}

// Store is the read-only attribute store the interpolation core resolves
// against. Implementations must never be mutated during a resolution call;
// callers own any locking required around concurrent writers.
type Store interface {
	// GetAttribute returns the named scalar attribute. The boolean is false
	// when the attribute is absent or empty.
	GetAttribute(name string) (string, bool)

	// GetGroup returns the records of the named group in a stable,
	// implementation-defined order. A nil or empty result means the group
	// is absent. The returned slice must not be mutated by the caller.
	GetGroup(name string) []Record
}

// MapRecord is a Record backed by a plain map. Keys are lower-cased on
// construction.
type MapRecord map[string]string

// NewMapRecord copies fields into a MapRecord, lower-casing every key.
func NewMapRecord(fields map[string]string) MapRecord {
	r := make(MapRecord, len(fields))
	for k, v := range fields {
		r[strings.ToLower(k)] = v
	}
	return r
}

// Fields returns the record's field names, sorted. Only fields with
// non-empty values are listed.
func (r MapRecord) Fields() []string {
	names := make([]string, 0, len(r))
	for name, value := range r {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// GetField implements Record.
func (r MapRecord) GetField(name string) (string, bool) {
	v, ok := r[strings.ToLower(name)]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Base is an in-memory Store. It is not safe for concurrent mutation;
// populate it fully before handing it to readers.
type Base struct {
	attrs  map[string]string
	groups map[string][]Record
}

// NewBase returns an empty in-memory store.
func NewBase() *Base {
	return &Base{
		attrs:  make(map[string]string),
		groups: make(map[string][]Record),
	}
}

// SetAttribute stores a scalar attribute under the lower-cased name.
func (b *Base) SetAttribute(name, value string) {
	b.attrs[strings.ToLower(name)] = value
}

// AddGroupRecord appends a record to the named group, preserving insertion
// order. Insertion order is the order resolution and expansion observe.
func (b *Base) AddGroupRecord(group string, fields map[string]string) {
	key := strings.ToLower(group)
	b.groups[key] = append(b.groups[key], NewMapRecord(fields))
}

// GetAttribute implements Store.
func (b *Base) GetAttribute(name string) (string, bool) {
	v, ok := b.attrs[strings.ToLower(name)]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// GetGroup implements Store.
func (b *Base) GetGroup(name string) []Record {
	return b.groups[strings.ToLower(name)]
}

// Attributes returns the names of all scalar attributes, sorted. Intended
// for diagnostics and condition evaluation, not for resolution.
func (b *Base) Attributes() []string {
	names := make([]string, 0, len(b.attrs))
	for name := range b.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Groups returns the names of all groups, sorted.
func (b *Base) Groups() []string {
	names := make([]string, 0, len(b.groups))
	for name := range b.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindRecord returns the first record of the named group, in store order,
// whose field equals value. Field name matching is case-insensitive; value
// matching is exact.
func FindRecord(s Store, group, field, value string) (Record, bool) {
	if value == "" {
		return nil, false
	}
	for _, rec := range s.GetGroup(group) {
		if v, ok := rec.GetField(field); ok && v == value {
			return rec, true
		}
	}
	return nil, false
}
