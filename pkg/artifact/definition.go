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

// Package artifact defines YAML forensic artifact definitions, a registry
// that loads and watches them, and a processor that expands their sources
// against a knowledge base.
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SourceType names how an artifact source is collected.
type SourceType string

const (
	TypeFile          SourceType = "FILE"
	TypeRegistryKey   SourceType = "REGISTRY_KEY"
	TypeRegistryValue SourceType = "REGISTRY_VALUE"
	TypeCommand       SourceType = "COMMAND"
	TypeWMI           SourceType = "WMI"
	TypeArtifactGroup SourceType = "ARTIFACT_GROUP"
)

// knownTypes lists every source type the processor understands.
var knownTypes = map[SourceType]bool{
	TypeFile:          true,
	TypeRegistryKey:   true,
	TypeRegistryValue: true,
	TypeCommand:       true,
	TypeWMI:           true,
	TypeArtifactGroup: true,
}

// Definition is one artifact as written in a YAML definition file.
type Definition struct {
	Name        string   `yaml:"name"`
	Doc         string   `yaml:"doc"`
	Sources     []Source `yaml:"sources"`
	Conditions  []string `yaml:"conditions"`
	SupportedOS []string `yaml:"supported_os"`
	Labels      []string `yaml:"labels"`
	Provides    []string `yaml:"provides"`
	URLs        []string `yaml:"urls"`
}

// Source is one collection source of a definition. Attributes are free-form
// YAML and are decoded into the typed attribute structs on demand.
type Source struct {
	Type        SourceType     `yaml:"type"`
	Attributes  map[string]any `yaml:"attributes"`
	Conditions  []string       `yaml:"conditions"`
	SupportedOS []string       `yaml:"supported_os"`
}

// Validate checks the definition's structural integrity: a name, known
// source types, and per-type attribute shape.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return NewDefinitionError(d.Name, "artifact has no name", nil)
	}
	if len(d.Sources) == 0 {
		return NewDefinitionError(d.Name, "artifact has no sources", nil)
	}
	for i, source := range d.Sources {
		if err := source.validate(); err != nil {
			return NewDefinitionError(d.Name, fmt.Sprintf("source %d is invalid", i), err)
		}
	}
	return nil
}

func (s *Source) validate() error {
	if !knownTypes[s.Type] {
		return fmt.Errorf("unknown source type %q", s.Type)
	}

	switch s.Type {
	case TypeFile:
		var attrs FileAttributes
		if err := s.DecodeAttributes(&attrs); err != nil {
			return err
		}
		if len(attrs.Paths) == 0 {
			return errors.New("FILE source has no paths")
		}
	case TypeRegistryKey:
		var attrs RegistryKeyAttributes
		if err := s.DecodeAttributes(&attrs); err != nil {
			return err
		}
		if len(attrs.Keys) == 0 {
			return errors.New("REGISTRY_KEY source has no keys")
		}
	case TypeRegistryValue:
		var attrs RegistryValueAttributes
		if err := s.DecodeAttributes(&attrs); err != nil {
			return err
		}
		if len(attrs.KeyValuePairs) == 0 {
			return errors.New("REGISTRY_VALUE source has no key_value_pairs")
		}
		for _, pair := range attrs.KeyValuePairs {
			if pair.Key == "" {
				return errors.New("REGISTRY_VALUE pair has an empty key")
			}
		}
	case TypeCommand:
		var attrs CommandAttributes
		if err := s.DecodeAttributes(&attrs); err != nil {
			return err
		}
		if attrs.Cmd == "" {
			return errors.New("COMMAND source has no cmd")
		}
	case TypeWMI:
		var attrs WMIAttributes
		if err := s.DecodeAttributes(&attrs); err != nil {
			return err
		}
		if attrs.Query == "" {
			return errors.New("WMI source has no query")
		}
	case TypeArtifactGroup:
		var attrs ArtifactGroupAttributes
		if err := s.DecodeAttributes(&attrs); err != nil {
			return err
		}
		if len(attrs.Names) == 0 {
			return errors.New("ARTIFACT_GROUP source has no names")
		}
	}
	return nil
}

// ParseDefinitions parses a YAML stream of artifact definitions. Each YAML
// document is one definition; empty documents are skipped. Definitions are
// parsed, not validated.
func ParseDefinitions(data []byte) ([]*Definition, error) {
	var defs []*Definition

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var def Definition
		err := decoder.Decode(&def)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse artifact definitions: %w", err)
		}
		if def.Name == "" && len(def.Sources) == 0 {
			continue
		}
		defs = append(defs, &def)
	}
	return defs, nil
}
