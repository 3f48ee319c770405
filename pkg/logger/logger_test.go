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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		level, err := ParseLevel(tc.input)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", tc.input, err)
		}
		if level != tc.want {
			t.Errorf("ParseLevel(%q) = %v; want %v", tc.input, level, tc.want)
		}
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestInit_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := Init(slog.LevelInfo, &buf, "text")

	log.Info("hello", "key", "value")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("unexpected text output: %q", buf.String())
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := Init(slog.LevelInfo, &buf, "json")

	log.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("unexpected json output: %q", buf.String())
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := Init(slog.LevelWarn, &buf, "text")

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record should be filtered at warn level: %q", buf.String())
	}
	log.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn record should pass at warn level")
	}
}
