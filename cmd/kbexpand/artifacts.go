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
	"strconv"
	"strings"

	"github.com/openartifacts/artifactlib/pkg/artifact"
	"github.com/openartifacts/artifactlib/pkg/audit"
	"github.com/openartifacts/artifactlib/pkg/csvutil"
	"github.com/openartifacts/artifactlib/pkg/interpolation"
)

// ArtifactsCmd groups the artifact definition commands.
type ArtifactsCmd struct {
	List   ArtifactsListCmd   `cmd:"" help:"List artifact definitions from a directory."`
	Expand ArtifactsExpandCmd `cmd:"" help:"Expand artifacts against the knowledge base."`
}

// ArtifactsListCmd parses and lists definitions as a table.
type ArtifactsListCmd struct {
	Dir string `arg:"" help:"Directory containing YAML artifact definitions." type:"existingdir"`
}

func (c *ArtifactsListCmd) Run() error {
	registry := artifact.NewRegistry()
	if err := registry.LoadDir(c.Dir); err != nil {
		return err
	}

	writer := csvutil.NewDictWriter([]string{"name", "sources", "supported_os", "labels"})
	if err := writer.WriteHeader(); err != nil {
		return err
	}
	for _, def := range registry.List() {
		row := map[string]string{
			"name":         def.Name,
			"sources":      strconv.Itoa(len(def.Sources)),
			"supported_os": strings.Join(def.SupportedOS, " "),
			"labels":       strings.Join(def.Labels, " "),
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}
	fmt.Print(writer.Content())
	return nil
}

// ArtifactsExpandCmd expands named artifacts through the processor.
type ArtifactsExpandCmd struct {
	Names      []string `arg:"" help:"Artifact names to expand."`
	Dir        string   `required:"" help:"Directory containing YAML artifact definitions." type:"existingdir"`
	BestEffort bool     `help:"Log missing attributes instead of failing."`
	Audit      bool     `help:"Print the audit trail after expansion."`
}

func (c *ArtifactsExpandCmd) Run(cli *CLI) error {
	store, err := loadStore(cli)
	if err != nil {
		return err
	}

	registry := artifact.NewRegistry()
	if err := registry.LoadDir(c.Dir); err != nil {
		return err
	}

	mode := interpolation.Strict
	if c.BestEffort {
		mode = interpolation.BestEffort
	}
	auditLog := audit.NewLog()
	processor := artifact.NewProcessor(registry, store,
		artifact.WithErrorMode(mode),
		artifact.WithAuditLog(auditLog),
	)

	for _, name := range c.Names {
		results, err := processor.ExpandArtifact(name)
		if err != nil {
			return err
		}
		for _, result := range results {
			fmt.Println(result)
		}
	}

	if c.Audit {
		writer := csvutil.NewDictWriter([]string{"timestamp", "action", "subject", "outputs"})
		if err := writer.WriteHeader(); err != nil {
			return err
		}
		for _, event := range auditLog.ReadAll() {
			row := map[string]string{
				"timestamp": event.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
				"action":    event.Action,
				"subject":   event.Subject,
				"outputs":   event.Details["outputs"],
			}
			if err := writer.WriteRow(row); err != nil {
				return err
			}
		}
		fmt.Print(writer.Content())
	}
	return nil
}
