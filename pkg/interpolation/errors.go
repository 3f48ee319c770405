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
	"fmt"
	"sort"
	"strings"
)

// SyntaxError reports a structurally invalid placeholder marker, such as an
// empty attribute or field name. Syntax errors are always surfaced
// regardless of the interpolator's error mode: they indicate a broken
// pattern definition, not missing runtime data.
type SyntaxError struct {
	Pattern string // The full pattern being parsed
	Marker  string // The marker body that failed to parse
	Message string // What is wrong with it
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid placeholder %%%%%s%%%% in pattern %q: %s",
		e.Marker, e.Pattern, e.Message)
}

// NewSyntaxError creates a new SyntaxError.
func NewSyntaxError(pattern, marker, message string) *SyntaxError {
	return &SyntaxError{
		Pattern: pattern,
		Marker:  marker,
		Message: message,
	}
}

// InterpolationError reports that one or more referenced attributes or
// scopes could not be resolved against the knowledge base. It is raised
// only after resolution is exhaustive and always carries the complete
// missing-name set, never one name at a time.
type InterpolationError struct {
	Pattern string   // The pattern whose resolution failed
	Missing []string // Sorted names that could not be bound
}

// Error implements the error interface.
func (e *InterpolationError) Error() string {
	return fmt.Sprintf("some attributes could not be located in the knowledge base: %s",
		strings.Join(e.Missing, ", "))
}

// NewInterpolationError creates a new InterpolationError. The missing names
// are copied and sorted so the message is deterministic.
func NewInterpolationError(pattern string, missing []string) *InterpolationError {
	names := make([]string, len(missing))
	copy(names, missing)
	sort.Strings(names)
	return &InterpolationError{
		Pattern: pattern,
		Missing: names,
	}
}
