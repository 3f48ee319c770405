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

// Command kbexpand expands knowledge-base patterns and artifact
// definitions from the command line.
//
// Usage:
//
//	kbexpand expand --kb kb.yaml '%%users.homedir%%/.ssh'
//	kbexpand check --kb kb.yaml 'os == "Windows"'
//	kbexpand artifacts list ./definitions
//	kbexpand artifacts expand --kb kb.yaml --dir ./definitions SshConfig
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/openartifacts/artifactlib"
	"github.com/openartifacts/artifactlib/pkg/knowledge"
	"github.com/openartifacts/artifactlib/pkg/logger"
)

// CLI defines the command-line interface.
type CLI struct {
	Version   VersionCmd   `cmd:"" help:"Show version information."`
	Expand    ExpandCmd    `cmd:"" help:"Expand %%...%% patterns against a knowledge base."`
	Check     CheckCmd     `cmd:"" help:"Evaluate a condition against a knowledge base."`
	Artifacts ArtifactsCmd `cmd:"" help:"Work with artifact definition files."`

	KB        string `short:"k" help:"Path to the knowledge base snapshot (YAML)." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFormat string `help:"Log format (text or json)." default:"text"`
	EnvFile   string `help:"Load environment variables from this file first." type:"path"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(artifactlib.GetVersion())
	return nil
}

// loadStore reads the knowledge base snapshot named by the global --kb flag.
func loadStore(cli *CLI) (*knowledge.Base, error) {
	if cli.KB == "" {
		return nil, fmt.Errorf("--kb is required for this command")
	}
	return knowledge.LoadSnapshotFile(cli.KB)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("kbexpand"),
		kong.Description("Knowledge-base pattern expansion for forensic artifacts."),
		kong.UsageOnError(),
	)

	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load env file: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Best effort: a .env in the working directory, if any.
		_ = godotenv.Load()
	}

	level, err := logger.ParseLevel(cli.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(level, os.Stderr, cli.LogFormat)

	ctx.FatalIfErrorf(ctx.Run(cli))
}
