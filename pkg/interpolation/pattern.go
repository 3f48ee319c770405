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

// Package interpolation expands patterns containing %%...%% placeholder
// markers into concrete strings by resolving each marker against a
// knowledge base.
//
// A marker body is a dotted identifier: a bare name references a scalar
// attribute ("%%os%%"), while "scope.field" references a field within every
// record of a repeated group ("%%users.homedir%%"). A pattern referencing a
// scope expands to one output per group record that satisfies every field
// the pattern requests from that scope. Resolution failures are aggregated
// across the whole pattern and reported once, never incrementally.
package interpolation

import (
	"regexp"
	"slices"
	"strings"
)

// markerRegex matches one placeholder marker and captures its body.
var markerRegex = regexp.MustCompile(`%%([^%]+?)%%`)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentVar
	segmentScopeField
)

// segment is one piece of a parsed pattern: literal text, a scalar variable
// reference, or a scope.field reference.
type segment struct {
	kind  segmentKind
	text  string // literal text, scalar name, or field name
	scope string // scope name, set only for segmentScopeField
}

// Pattern is an immutable parsed pattern. It records the ordered segments
// used for substitution plus the unique reference sets the resolver needs.
// Identifiers are lower-cased at parse time; knowledge base lookups are
// case-insensitive by convention.
type Pattern struct {
	raw         string
	segments    []segment
	vars        []string            // unique scalar names, first-appearance order
	scopes      []string            // unique scope names, first-appearance order
	scopeFields map[string][]string // unique field names per scope, first-appearance order
}

// Parse scans a pattern string into a Pattern. It is a pure parse with no
// knowledge base access.
//
// Markers are delimited by double percent signs; text outside markers,
// including unpaired percent signs, is literal. A marker body is split on
// its first dot: one segment yields a scalar reference, two yield a scope
// plus field reference. Additional dots belong to the field name. An empty
// name on either side of the first dot is a SyntaxError.
func Parse(pattern string) (*Pattern, error) {
	p := &Pattern{
		raw:         pattern,
		scopeFields: make(map[string][]string),
	}

	offset := 0
	for _, match := range markerRegex.FindAllStringSubmatchIndex(pattern, -1) {
		if match[0] > offset {
			p.segments = append(p.segments, segment{
				kind: segmentLiteral,
				text: pattern[offset:match[0]],
			})
		}
		offset = match[1]

		body := pattern[match[2]:match[3]]
		if err := p.addReference(body); err != nil {
			return nil, err
		}
	}
	if offset < len(pattern) {
		p.segments = append(p.segments, segment{
			kind: segmentLiteral,
			text: pattern[offset:],
		})
	}

	return p, nil
}

// addReference classifies one marker body and records it.
func (p *Pattern) addReference(body string) error {
	name, field, qualified := strings.Cut(strings.ToLower(body), ".")

	if !qualified {
		if strings.TrimSpace(name) == "" {
			return NewSyntaxError(p.raw, body, "empty attribute name")
		}
		p.segments = append(p.segments, segment{kind: segmentVar, text: name})
		if !slices.Contains(p.vars, name) {
			p.vars = append(p.vars, name)
		}
		return nil
	}

	if strings.TrimSpace(name) == "" {
		return NewSyntaxError(p.raw, body, "empty scope name")
	}
	if strings.TrimSpace(field) == "" {
		return NewSyntaxError(p.raw, body, "empty field name")
	}

	p.segments = append(p.segments, segment{
		kind:  segmentScopeField,
		text:  field,
		scope: name,
	})
	if !slices.Contains(p.scopes, name) {
		p.scopes = append(p.scopes, name)
	}
	if !slices.Contains(p.scopeFields[name], field) {
		p.scopeFields[name] = append(p.scopeFields[name], field)
	}
	return nil
}

// Raw returns the original pattern text.
func (p *Pattern) Raw() string {
	return p.raw
}

// Vars returns the unique scalar attribute names the pattern references, in
// first-appearance order.
func (p *Pattern) Vars() []string {
	return slices.Clone(p.vars)
}

// Scopes returns the unique scope names the pattern references, in
// first-appearance order.
func (p *Pattern) Scopes() []string {
	return slices.Clone(p.scopes)
}

// ScopeFields returns the unique field names the pattern requests from the
// named scope, in first-appearance order.
func (p *Pattern) ScopeFields(scope string) []string {
	return slices.Clone(p.scopeFields[strings.ToLower(scope)])
}
