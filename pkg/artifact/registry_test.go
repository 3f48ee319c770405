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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefinition(t *testing.T, dir, file, name string) {
	t.Helper()
	content := `
name: ` + name + `
doc: Test artifact.
sources:
  - type: COMMAND
    attributes:
      cmd: echo
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0644))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	def := &Definition{
		Name:    "Test",
		Sources: []Source{{Type: TypeCommand, Attributes: map[string]any{"cmd": "ls"}}},
	}

	require.NoError(t, registry.Register(def))

	got, ok := registry.Get("Test")
	require.True(t, ok)
	assert.Equal(t, def, got)

	_, ok = registry.Get("Missing")
	assert.False(t, ok)
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	def := &Definition{
		Name:    "Test",
		Sources: []Source{{Type: TypeCommand, Attributes: map[string]any{"cmd": "ls"}}},
	}

	require.NoError(t, registry.Register(def))
	assert.Error(t, registry.Register(def))
}

func TestRegistry_RejectsInvalidDefinitions(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(&Definition{Name: "NoSources"})
	assert.Error(t, err)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_ListSortedByName(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		def := &Definition{
			Name:    name,
			Sources: []Source{{Type: TypeCommand, Attributes: map[string]any{"cmd": "ls"}}},
		}
		require.NoError(t, registry.Register(def))
	}

	var names []string
	for _, def := range registry.List() {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, names)
}

func TestRegistry_LoadFile(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "one.yaml", "One")

	registry := NewRegistry()
	require.NoError(t, registry.LoadFile(filepath.Join(dir, "one.yaml")))
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "b.yaml", "FromB")
	writeDefinition(t, dir, "a.yml", "FromA")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	registry := NewRegistry()
	require.NoError(t, registry.LoadDir(dir))

	assert.Equal(t, 2, registry.Len())
	_, ok := registry.Get("FromA")
	assert.True(t, ok)
	_, ok = registry.Get("FromB")
	assert.True(t, ok)
}

func TestRegistry_LoadDirDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "a.yaml", "Same")
	writeDefinition(t, dir, "b.yaml", "Same")

	registry := NewRegistry()
	err := registry.LoadDir(dir)
	require.Error(t, err)
	// Files register in sorted order, so the duplicate is reported for the
	// second file.
	assert.Contains(t, err.Error(), "b.yaml")
}

func TestRegistry_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "initial.yaml", "Initial")

	reloaded := make(chan int, 4)
	registry := NewRegistry(WithOnReload(func(count int) {
		reloaded <- count
	}))
	require.NoError(t, registry.LoadDir(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- registry.Watch(ctx, dir)
	}()

	// Give the watcher a moment to install before changing the directory.
	time.Sleep(200 * time.Millisecond)
	writeDefinition(t, dir, "added.yaml", "Added")

	select {
	case count := <-reloaded:
		assert.Equal(t, 2, count)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	_, ok := registry.Get("Added")
	assert.True(t, ok)

	cancel()
	select {
	case err := <-watchDone:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher shutdown")
	}
}
