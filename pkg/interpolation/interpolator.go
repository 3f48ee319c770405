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
	"log/slog"
	"slices"

	"github.com/openartifacts/artifactlib/pkg/knowledge"
)

// ErrorMode selects what happens when a pattern references attributes the
// knowledge base cannot supply.
type ErrorMode int

const (
	// Strict propagates the aggregated InterpolationError to the caller.
	Strict ErrorMode = iota

	// BestEffort logs the aggregated miss and yields zero outputs for the
	// affected pattern. All-or-nothing per pattern: there are no partial
	// expansions.
	BestEffort
)

// String returns the mode name.
func (m ErrorMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case BestEffort:
		return "best-effort"
	default:
		return "unknown"
	}
}

// Interpolator expands patterns against a knowledge base. The zero options
// give Strict mode and the default slog logger.
type Interpolator struct {
	store  knowledge.Store
	mode   ErrorMode
	logger *slog.Logger
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithErrorMode sets how missing attributes are handled.
func WithErrorMode(mode ErrorMode) Option {
	return func(in *Interpolator) {
		in.mode = mode
	}
}

// WithLogger sets the logger used for BestEffort diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpolator) {
		in.logger = logger
	}
}

// New creates an Interpolator over the given store.
func New(store knowledge.Store, opts ...Option) *Interpolator {
	in := &Interpolator{
		store:  store,
		mode:   Strict,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Interpolate expands a single pattern, returning every substituted string
// in deterministic order.
//
// A syntactically invalid pattern always returns a SyntaxError regardless
// of mode. When resolution leaves names unbound, Strict mode returns an
// InterpolationError naming all of them at once; BestEffort mode logs the
// same diagnostic and returns zero outputs with a nil error.
func (in *Interpolator) Interpolate(pattern string) ([]string, error) {
	parsed, err := Parse(pattern)
	if err != nil {
		patternsTotal.WithLabelValues(outcomeSyntaxError).Inc()
		return nil, err
	}

	res := parsed.Resolve(in.store)
	if missing := res.Missing(); len(missing) > 0 {
		patternsTotal.WithLabelValues(outcomeMissing).Inc()
		missingNamesTotal.Add(float64(len(missing)))

		interpErr := NewInterpolationError(pattern, missing)
		if in.mode == Strict {
			return nil, interpErr
		}
		in.logger.Warn("Some attributes could not be located in the knowledge base",
			"pattern", pattern,
			"missing", interpErr.Missing)
		return nil, nil
	}

	results := slices.Collect(res.Expand())
	patternsTotal.WithLabelValues(outcomeExpanded).Inc()
	outputsTotal.Add(float64(len(results)))
	return results, nil
}

// InterpolateAll expands every pattern in order and concatenates the
// results. In Strict mode the first pattern with unresolved names aborts
// the whole call; in BestEffort mode such patterns contribute nothing and
// the remaining patterns are still expanded.
func (in *Interpolator) InterpolateAll(patterns []string) ([]string, error) {
	var results []string
	for _, pattern := range patterns {
		expanded, err := in.Interpolate(pattern)
		if err != nil {
			return nil, err
		}
		results = append(results, expanded...)
	}
	return results, nil
}
