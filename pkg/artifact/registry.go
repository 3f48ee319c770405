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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// Registry holds validated artifact definitions keyed by name.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]*Definition

	onReload func(count int)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithOnReload sets a callback invoked with the definition count after each
// successful Watch reload.
func WithOnReload(fn func(count int)) RegistryOption {
	return func(r *Registry) {
		r.onReload = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		definitions: make(map[string]*Definition),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates and adds one definition. Names must be unique.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.Name]; exists {
		return NewDefinitionError(def.Name, "artifact already registered", nil)
	}
	r.definitions[def.Name] = def
	return nil
}

// Get returns the named definition.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[name]
	return def, exists
}

// List returns every definition sorted by name.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.definitions)
}

// LoadFile parses and registers every definition in one YAML file.
func (r *Registry) LoadFile(path string) error {
	defs, err := parseFile(path)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// LoadDir parses every .yaml/.yml file in a directory and registers the
// definitions. Files are parsed in parallel; registration order follows the
// sorted file names so duplicate handling is deterministic.
func (r *Registry) LoadDir(dir string) error {
	paths, err := definitionFiles(dir)
	if err != nil {
		return err
	}

	parsed := make([][]*Definition, len(paths))
	g := new(errgroup.Group)
	for i, path := range paths {
		g.Go(func() error {
			defs, err := parseFile(path)
			if err != nil {
				return err
			}
			parsed[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, defs := range parsed {
		for _, def := range defs {
			if err := r.Register(def); err != nil {
				return fmt.Errorf("%s: %w", paths[i], err)
			}
		}
	}
	return nil
}

// Watch reloads the directory whenever a definition file changes. Changes
// are debounced and a failed reload keeps the previous definitions. Blocks
// until ctx is cancelled.
func (r *Registry) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	slog.Info("Watching artifact definitions", "dir", dir)

	// Debounce timer to coalesce rapid changes.
	var debounceTimer *time.Timer
	const debounceDelay = 100 * time.Millisecond

	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return ctx.Err()

		case <-reload:
			if err := r.reloadDir(dir); err != nil {
				slog.Error("Failed to reload artifact definitions", "dir", dir, "error", err)
				continue
			}
			count := r.Len()
			slog.Info("Artifact definitions reloaded", "dir", dir, "count", count)
			if r.onReload != nil {
				r.onReload(count)
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDefinitionFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
					// Reload already pending.
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

// reloadDir replaces the registry contents with the directory's current
// definitions, atomically from the readers' perspective.
func (r *Registry) reloadDir(dir string) error {
	fresh := NewRegistry()
	if err := fresh.LoadDir(dir); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions = fresh.definitions
	return nil
}

func parseFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}
	defs, err := ParseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

func definitionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
