/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package lookup provides the object-discovery registry.
//
// Packages that ship parametric objects register a loader under their module
// path at init time:
//
//	func init() {
//		lookup.RegisterModule("widgets", func(m *lookup.Module) error {
//			m.AddClass(WidgetClass)
//			m.AddClass(GadgetClass)
//			return nil
//		})
//	}
//
// Loaders run freshly on every discovery call, so a transient failure or a
// changed catalogue is picked up by the next walk, and they are isolated: a
// loader that fails or panics marks its own module as failed for that walk
// and never aborts it. AllObjects then filters the loaded catalogue by
// ancestry, tags, and exclusion lists; PackageMetadata renders it as a
// manifest.
package lookup

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/parx/apis"
)

var (
	// ErrDuplicateModule is returned when a module path is registered twice.
	ErrDuplicateModule = errors.New("parx(lookup): duplicate module registration")
	// ErrEmptyPath is returned when an empty module path is provided.
	ErrEmptyPath = errors.New("parx(lookup): empty module path")
	// ErrNilLoader is returned when a nil loader is provided.
	ErrNilLoader = errors.New("parx(lookup): nil module loader")
)

// Loader populates a module's catalogue. It runs once per discovery walk.
// A non-nil error (or a panic) marks the module as failed for that walk.
type Loader func(m *Module) error

// Module is the per-path catalogue a Loader populates.
type Module struct {
	// Path is the module path the catalogue was registered under.
	Path string

	classes []*apis.Class
	funcs   map[string]any
}

// AddClass records a parametric class in the module's catalogue. Nil
// descriptors are ignored.
func (m *Module) AddClass(cls *apis.Class) {
	if cls == nil {
		return
	}
	m.classes = append(m.classes, cls)
}

// AddFunc records a named non-class export (factory helpers and the like)
// so manifests can list it alongside classes.
func (m *Module) AddFunc(name string, fn any) {
	if name == "" || fn == nil {
		return
	}
	if m.funcs == nil {
		m.funcs = make(map[string]any)
	}
	m.funcs[name] = fn
}

// entry is one registered module loader.
type entry struct {
	path   string
	loader Loader
}

var (
	regMu   sync.Mutex
	modules = map[string]*entry{}
)

// RegisterModule registers a loader under a module path. It is meant to be
// called from init functions; each path registers exactly once.
func RegisterModule(path string, loader Loader) error {
	if path == "" {
		return ErrEmptyPath
	}
	if loader == nil {
		return ErrNilLoader
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := modules[path]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateModule, path)
	}
	modules[path] = &entry{path: path, loader: loader}
	return nil
}

// MustRegisterModule is RegisterModule panicking on error, for init-time use.
func MustRegisterModule(path string, loader Loader) {
	if err := RegisterModule(path, loader); err != nil {
		panic(err)
	}
}

// RegisteredModules returns the sorted paths of all registered modules.
func RegisteredModules() []string {
	regMu.Lock()
	defer regMu.Unlock()
	paths := make([]string, 0, len(modules))
	for p := range modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ResetRegistry drops all registered modules. Test use only; production
// registries are append-only.
func ResetRegistry() {
	regMu.Lock()
	defer regMu.Unlock()
	modules = map[string]*entry{}
}

// snapshot returns the current entries sorted by path.
func snapshot() []*entry {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]*entry, 0, len(modules))
	for _, e := range modules {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}
