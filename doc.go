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

// Package artifactlib expands forensic artifact patterns against a
// hierarchical knowledge base.
//
// A pattern like "%%users.homedir%%/.ssh/known_hosts" contains placeholder
// markers resolved against scalar attributes and repeated record groups of
// a knowledge base; a group-scoped marker fans out into one output per
// record that satisfies every requested field. The heavy lifting lives in
// the subpackages:
//
//   - pkg/interpolation: pattern scanning, resolution, and expansion
//   - pkg/knowledge: the attribute store and YAML snapshots
//   - pkg/condition: HCL condition evaluation against a store
//   - pkg/artifact: YAML artifact definitions, registry, and processor
//   - pkg/winenv: Windows %VAR% environment expansion
//   - pkg/audit, pkg/csvutil, pkg/logger: supporting pieces
//
// The root package only carries version information; see cmd/kbexpand for
// the command-line interface.
package artifactlib
