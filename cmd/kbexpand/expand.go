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

	"github.com/openartifacts/artifactlib/pkg/csvutil"
	"github.com/openartifacts/artifactlib/pkg/interpolation"
)

// ExpandCmd expands one or more patterns against the knowledge base.
type ExpandCmd struct {
	Patterns   []string `arg:"" help:"Patterns to expand, e.g. '%%users.homedir%%/.ssh'."`
	BestEffort bool     `help:"Log missing attributes instead of failing; affected patterns expand to nothing."`
	Format     string   `help:"Output format." default:"text" enum:"text,csv"`
}

func (c *ExpandCmd) Run(cli *CLI) error {
	store, err := loadStore(cli)
	if err != nil {
		return err
	}

	mode := interpolation.Strict
	if c.BestEffort {
		mode = interpolation.BestEffort
	}
	interp := interpolation.New(store, interpolation.WithErrorMode(mode))

	results, err := interp.InterpolateAll(c.Patterns)
	if err != nil {
		return err
	}

	return printResults(results, c.Format)
}

func printResults(results []string, format string) error {
	if format == "csv" {
		writer := csvutil.NewWriter()
		for _, result := range results {
			if err := writer.WriteRow([]string{result}); err != nil {
				return err
			}
		}
		fmt.Print(writer.Content())
		return nil
	}

	for _, result := range results {
		fmt.Println(result)
	}
	return nil
}
