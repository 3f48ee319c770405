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

package condition

import "fmt"

// ConditionError reports an invalid condition: a parse failure, an
// evaluation failure, or a non-boolean result. It wraps the underlying
// engine diagnostics when there are any.
type ConditionError struct {
	Condition string // The condition text
	Message   string // What went wrong
	Err       error  // Underlying engine diagnostics, if any
}

// Error implements the error interface.
func (e *ConditionError) Error() string {
	msg := fmt.Sprintf("invalid condition %q: %s", e.Condition, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConditionError) Unwrap() error {
	return e.Err
}

// NewConditionError creates a new ConditionError.
func NewConditionError(condition, message string, err error) *ConditionError {
	return &ConditionError{
		Condition: condition,
		Message:   message,
		Err:       err,
	}
}
