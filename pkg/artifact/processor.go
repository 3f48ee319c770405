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
	"strconv"
	"strings"

	"github.com/openartifacts/artifactlib/pkg/audit"
	"github.com/openartifacts/artifactlib/pkg/condition"
	"github.com/openartifacts/artifactlib/pkg/interpolation"
	"github.com/openartifacts/artifactlib/pkg/knowledge"
)

// Processor expands artifact definitions against a knowledge base: it
// checks eligibility (supported_os and conditions), interpolates source
// patterns, and follows ARTIFACT_GROUP references.
type Processor struct {
	registry   *Registry
	store      knowledge.Store
	interp     *interpolation.Interpolator
	interpMode interpolation.ErrorMode
	auditLog   *audit.Log
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithErrorMode sets how missing knowledge base attributes are handled
// during source interpolation.
func WithErrorMode(mode interpolation.ErrorMode) ProcessorOption {
	return func(p *Processor) {
		p.interpMode = mode
	}
}

// WithAuditLog records one audit event per expanded artifact.
func WithAuditLog(log *audit.Log) ProcessorOption {
	return func(p *Processor) {
		p.auditLog = log
	}
}

// NewProcessor creates a Processor over a registry and a knowledge base.
func NewProcessor(registry *Registry, store knowledge.Store, opts ...ProcessorOption) *Processor {
	p := &Processor{
		registry: registry,
		store:    store,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.interp = interpolation.New(store, interpolation.WithErrorMode(p.interpMode))
	return p
}

// Eligible reports whether the definition applies to the knowledge base:
// its supported_os list (empty means all) must cover the store's "os"
// attribute, and every condition must hold. Condition errors surface
// immediately.
func (p *Processor) Eligible(def *Definition) (bool, error) {
	if !p.osSupported(def.SupportedOS) {
		return false, nil
	}
	return p.conditionsHold(def.Conditions)
}

// ExpandArtifact expands the named artifact into concrete strings: file
// paths, registry keys and values, WMI queries, command lines, and the
// expansions of grouped artifacts. An ineligible artifact expands to
// nothing. One audit event is written per call when an audit log is
// configured.
func (p *Processor) ExpandArtifact(name string) ([]string, error) {
	results, err := p.expand(name, make(map[string]bool))

	if p.auditLog != nil {
		details := map[string]string{"outputs": strconv.Itoa(len(results))}
		if err != nil {
			details["error"] = err.Error()
		}
		p.auditLog.Write(audit.Event{
			Action:  "artifact.expand",
			Subject: name,
			Details: details,
		})
	}

	return results, err
}

func (p *Processor) expand(name string, visiting map[string]bool) ([]string, error) {
	if visiting[name] {
		return nil, NewProcessingError(name, "artifact group cycle detected", nil)
	}
	visiting[name] = true
	defer delete(visiting, name)

	def, ok := p.registry.Get(name)
	if !ok {
		return nil, NewProcessingError(name, "artifact is not defined", nil)
	}

	eligible, err := p.Eligible(def)
	if err != nil {
		return nil, NewProcessingError(name, "condition check failed", err)
	}
	if !eligible {
		return nil, nil
	}

	var results []string
	for i, source := range def.Sources {
		expanded, err := p.expandSource(&source, visiting)
		if err != nil {
			return nil, NewProcessingError(name, fmt.Sprintf("source %d failed", i), err)
		}
		results = append(results, expanded...)
	}
	return results, nil
}

func (p *Processor) expandSource(source *Source, visiting map[string]bool) ([]string, error) {
	if !p.osSupported(source.SupportedOS) {
		return nil, nil
	}
	if hold, err := p.conditionsHold(source.Conditions); err != nil || !hold {
		return nil, err
	}

	switch source.Type {
	case TypeFile:
		var attrs FileAttributes
		if err := source.DecodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return p.interp.InterpolateAll(attrs.Paths)

	case TypeRegistryKey:
		var attrs RegistryKeyAttributes
		if err := source.DecodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return p.interp.InterpolateAll(attrs.Keys)

	case TypeRegistryValue:
		var attrs RegistryValueAttributes
		if err := source.DecodeAttributes(&attrs); err != nil {
			return nil, err
		}
		patterns := make([]string, 0, len(attrs.KeyValuePairs))
		for _, pair := range attrs.KeyValuePairs {
			patterns = append(patterns, pair.Key+`\`+pair.Value)
		}
		return p.interp.InterpolateAll(patterns)

	case TypeWMI:
		var attrs WMIAttributes
		if err := source.DecodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return p.interp.Interpolate(attrs.Query)

	case TypeCommand:
		// Commands are reported as written, never interpolated.
		var attrs CommandAttributes
		if err := source.DecodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return []string{strings.Join(append([]string{attrs.Cmd}, attrs.Args...), " ")}, nil

	case TypeArtifactGroup:
		var attrs ArtifactGroupAttributes
		if err := source.DecodeAttributes(&attrs); err != nil {
			return nil, err
		}
		var results []string
		for _, child := range attrs.Names {
			expanded, err := p.expand(child, visiting)
			if err != nil {
				return nil, err
			}
			results = append(results, expanded...)
		}
		return results, nil

	default:
		return nil, fmt.Errorf("unknown source type %q", source.Type)
	}
}

func (p *Processor) osSupported(supported []string) bool {
	if len(supported) == 0 {
		return true
	}
	os, ok := p.store.GetAttribute("os")
	if !ok {
		return false
	}
	for _, candidate := range supported {
		if strings.EqualFold(candidate, os) {
			return true
		}
	}
	return false
}

func (p *Processor) conditionsHold(conditions []string) (bool, error) {
	for _, text := range conditions {
		matched, err := condition.Check(text, p.store)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
