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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeMatched   = "matched"
	outcomeUnmatched = "unmatched"
	outcomeError     = "error"
)

var conditionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "artifactlib_condition_checks_total",
	Help: "Condition evaluations, by outcome.",
}, []string{"outcome"})
