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

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// FileAttributes describe a FILE source: path patterns to collect.
type FileAttributes struct {
	Paths     []string `mapstructure:"paths"`
	Separator string   `mapstructure:"separator"`
}

// RegistryKeyAttributes describe a REGISTRY_KEY source.
type RegistryKeyAttributes struct {
	Keys []string `mapstructure:"keys"`
}

// KeyValuePair is one registry key/value reference.
type KeyValuePair struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

// RegistryValueAttributes describe a REGISTRY_VALUE source.
type RegistryValueAttributes struct {
	KeyValuePairs []KeyValuePair `mapstructure:"key_value_pairs"`
}

// CommandAttributes describe a COMMAND source. Commands are executed as
// given and never interpolated.
type CommandAttributes struct {
	Cmd  string   `mapstructure:"cmd"`
	Args []string `mapstructure:"args"`
}

// WMIAttributes describe a WMI source.
type WMIAttributes struct {
	Query      string `mapstructure:"query"`
	BaseObject string `mapstructure:"base_object"`
}

// ArtifactGroupAttributes describe an ARTIFACT_GROUP source: names of other
// artifacts expanded in place of this one.
type ArtifactGroupAttributes struct {
	Names []string `mapstructure:"names"`
}

// DecodeAttributes decodes the source's free-form attributes into one of
// the typed attribute structs. The decode is weakly typed, so YAML numbers
// and booleans coerce into string fields.
func (s *Source) DecodeAttributes(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create attribute decoder: %w", err)
	}
	if err := decoder.Decode(s.Attributes); err != nil {
		return fmt.Errorf("failed to decode %s attributes: %w", s.Type, err)
	}
	return nil
}
