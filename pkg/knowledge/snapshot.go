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

package knowledge

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// snapshot is the on-disk YAML shape of a store:
//
//	attributes:
//	  os: Windows
//	  environ_systemroot: C:\Windows
//	groups:
//	  users:
//	    - username: alice
//	      homedir: /home/alice
type snapshot struct {
	Attributes map[string]string              `mapstructure:"attributes"`
	Groups     map[string][]map[string]string `mapstructure:"groups"`
}

// LoadSnapshot parses a YAML snapshot into a Base store.
//
// Parsing goes through an untyped map and a weakly-typed mapstructure
// decode, so YAML scalars that are numbers or booleans arrive as their
// string forms. Group record order within the document is preserved.
func LoadSnapshot(data []byte) (*Base, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	var snap snapshot
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &snap,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	base := NewBase()
	for name, value := range snap.Attributes {
		base.SetAttribute(name, value)
	}
	for group, records := range snap.Groups {
		for _, fields := range records {
			base.AddGroupRecord(group, fields)
		}
	}
	return base, nil
}

// LoadSnapshotFile reads and parses a YAML snapshot file.
func LoadSnapshotFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", path, err)
	}
	return LoadSnapshot(data)
}
