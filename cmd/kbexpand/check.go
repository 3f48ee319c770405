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

package main

import (
	"fmt"
	"os"

	"github.com/openartifacts/artifactlib/pkg/condition"
)

// CheckCmd evaluates a condition against the knowledge base. The exit code
// reflects the result: 0 when the condition holds, 1 when it does not.
type CheckCmd struct {
	Condition string `arg:"" help:"Condition expression, e.g. 'os == \"Windows\"'."`
}

func (c *CheckCmd) Run(cli *CLI) error {
	store, err := loadStore(cli)
	if err != nil {
		return err
	}

	matched, err := condition.Check(c.Condition, store)
	if err != nil {
		return err
	}

	fmt.Println(matched)
	if !matched {
		os.Exit(1)
	}
	return nil
}
