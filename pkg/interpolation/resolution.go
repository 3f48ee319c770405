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

package interpolation

import (
	"iter"
	"sort"
	"strings"

	"github.com/openartifacts/artifactlib/pkg/knowledge"
)

// Resolution is the outcome of resolving a Pattern against a knowledge
// base: the scalar bindings, the accepted records per scope, and the set of
// names that could not be bound. It is immutable once built.
type Resolution struct {
	pattern       *Pattern
	bindings      map[string]string
	scopeBindings map[string][]map[string]string
	missing       map[string]struct{}
}

// Resolve looks up every reference of the pattern on the store and records
// each outcome. Resolution is exhaustive: every scalar and every scope is
// attempted even after the first miss, so the missing set is complete
// before any error is decided. The store is only read, never written.
//
// A scalar binds when its attribute is present and non-empty. A scope binds
// when at least one record of its group resolves every requested field to a
// non-empty value; records satisfying only some fields are skipped entirely.
// Accepted records keep the store's group iteration order.
func (p *Pattern) Resolve(kb knowledge.Store) *Resolution {
	res := &Resolution{
		pattern:       p,
		bindings:      make(map[string]string, len(p.vars)),
		scopeBindings: make(map[string][]map[string]string, len(p.scopes)),
		missing:       make(map[string]struct{}),
	}

	for _, name := range p.vars {
		value, ok := kb.GetAttribute(name)
		if !ok {
			res.missing[name] = struct{}{}
			continue
		}
		res.bindings[name] = value
	}

	for _, scope := range p.scopes {
		records := kb.GetGroup(scope)
		if len(records) == 0 {
			res.missing[scope] = struct{}{}
			continue
		}

		fields := p.scopeFields[scope]
		for _, record := range records {
			accepted := resolveRecord(record, fields)
			if accepted != nil {
				res.scopeBindings[scope] = append(res.scopeBindings[scope], accepted)
			}
		}

		// The group existed, but no record satisfied every field.
		if len(res.scopeBindings[scope]) == 0 {
			res.missing[scope] = struct{}{}
		}
	}

	return res
}

// resolveRecord resolves every requested field on one record, returning the
// field bindings or nil if any field is absent or empty.
func resolveRecord(record knowledge.Record, fields []string) map[string]string {
	bindings := make(map[string]string, len(fields))
	for _, field := range fields {
		value, ok := record.GetField(field)
		if !ok {
			return nil
		}
		bindings[field] = value
	}
	return bindings
}

// Complete reports whether every reference was bound.
func (r *Resolution) Complete() bool {
	return len(r.missing) == 0
}

// Missing returns the sorted names that could not be bound: scalar names
// whose attribute was absent or empty, and scope names with no fully
// satisfying record.
func (r *Resolution) Missing() []string {
	names := make([]string, 0, len(r.missing))
	for name := range r.missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Binding returns the value bound to a scalar name.
func (r *Resolution) Binding(name string) (string, bool) {
	v, ok := r.bindings[strings.ToLower(name)]
	return v, ok
}

// ScopeRecords returns how many records of the named scope were accepted.
func (r *Resolution) ScopeRecords(scope string) int {
	return len(r.scopeBindings[strings.ToLower(scope)])
}

// Expand produces the fully substituted output strings as a lazy, finite
// sequence. A pattern with no placeholders yields exactly the raw pattern.
// A pattern referencing scopes yields one output per accepted record; when
// several distinct scopes appear, outputs cover the cartesian product of
// their accepted record lists, scopes iterated in first-appearance order
// with the rightmost scope varying fastest.
//
// Expansion is pure and deterministic: re-running against an unchanged
// resolution yields byte-identical outputs in identical order. An
// incomplete resolution yields nothing.
func (r *Resolution) Expand() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !r.Complete() {
			return
		}

		scopes := r.pattern.scopes
		current := make(map[string]map[string]string, len(scopes))

		var emit func(i int) bool
		emit = func(i int) bool {
			if i == len(scopes) {
				return yield(r.render(current))
			}
			for _, record := range r.scopeBindings[scopes[i]] {
				current[scopes[i]] = record
				if !emit(i + 1) {
					return false
				}
			}
			return true
		}
		emit(0)
	}
}

// render substitutes one concrete string given the current record choice
// for each scope.
func (r *Resolution) render(current map[string]map[string]string) string {
	var sb strings.Builder
	for _, seg := range r.pattern.segments {
		switch seg.kind {
		case segmentLiteral:
			sb.WriteString(seg.text)
		case segmentVar:
			sb.WriteString(r.bindings[seg.text])
		case segmentScopeField:
			sb.WriteString(current[seg.scope][seg.text])
		}
	}
	return sb.String()
}
