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

package artifact

import "fmt"

// DefinitionError reports a structurally invalid artifact definition.
type DefinitionError struct {
	Name    string // Artifact name, may be empty when the name itself is missing
	Message string // What is wrong
	Err     error  // Underlying error, if any
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	name := e.Name
	if name == "" {
		name = "<unnamed>"
	}
	msg := fmt.Sprintf("artifact %s: %s", name, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// NewDefinitionError creates a new DefinitionError.
func NewDefinitionError(name, message string, err error) *DefinitionError {
	return &DefinitionError{
		Name:    name,
		Message: message,
		Err:     err,
	}
}

// ProcessingError reports a failure while expanding an artifact.
type ProcessingError struct {
	Artifact string // Artifact being processed
	Message  string // What went wrong
	Err      error  // Underlying error, if any
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	msg := fmt.Sprintf("failed to process artifact %s: %s", e.Artifact, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError.
func NewProcessingError(artifact, message string, err error) *ProcessingError {
	return &ProcessingError{
		Artifact: artifact,
		Message:  message,
		Err:      err,
	}
}
