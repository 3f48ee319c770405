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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeExpanded    = "expanded"
	outcomeMissing     = "missing"
	outcomeSyntaxError = "syntax_error"
)

// Counters only; exposing them over HTTP is the host process's concern.
var (
	patternsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artifactlib_interpolation_patterns_total",
		Help: "Patterns interpolated, by outcome.",
	}, []string{"outcome"})

	outputsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artifactlib_interpolation_outputs_total",
		Help: "Fully substituted strings produced by expansion.",
	})

	missingNamesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artifactlib_interpolation_missing_names_total",
		Help: "Attribute and scope names observed missing during resolution.",
	})
)
