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

package lookup

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/parx/apis"
)

// ClassInfo is the manifest view of one discovered class.
type ClassInfo struct {
	Name    string         `yaml:"name"`
	Path    string         `yaml:"path"`
	Parent  string         `yaml:"parent,omitempty"`
	Doc     string         `yaml:"doc,omitempty"`
	Tags    map[string]any `yaml:"tags,omitempty"`
	HasInit bool           `yaml:"constructible"`
}

// ModuleManifest is the manifest view of one registered module.
type ModuleManifest struct {
	Module   string      `yaml:"module"`
	Classes  []ClassInfo `yaml:"classes,omitempty"`
	Funcs    []string    `yaml:"funcs,omitempty"`
	LoadErr  string      `yaml:"load_error,omitempty"`
	NumFound int         `yaml:"num_found"`
}

// PackageMetadata renders the catalogue of the module rooted at root as
// manifests, one per module. With recursive set, submodules (paths under
// "root/") are included; otherwise only the exact path. An empty root walks
// every registered module. Failed modules appear with their load error and
// an empty class list.
func PackageMetadata(root string, recursive bool) []ModuleManifest {
	var out []ModuleManifest
	for _, e := range snapshot() {
		if !pathInScope(e.path, root, recursive) {
			continue
		}
		mm := ModuleManifest{Module: e.path}
		mod, err := loadModule(e, true)
		if err != nil {
			mm.LoadErr = err.Error()
			out = append(out, mm)
			continue
		}
		for _, cls := range mod.classes {
			ci := ClassInfo{
				Name:    cls.Name,
				Path:    cls.FullPath(),
				Doc:     classDoc(cls),
				Tags:    cls.ResolvedTags(),
				HasInit: cls.New != nil,
			}
			if cls.Parent != nil {
				ci.Parent = cls.Parent.FullPath()
			}
			mm.Classes = append(mm.Classes, ci)
		}
		sort.Slice(mm.Classes, func(i, j int) bool {
			return mm.Classes[i].Name < mm.Classes[j].Name
		})
		for name := range mod.funcs {
			mm.Funcs = append(mm.Funcs, name)
		}
		sort.Strings(mm.Funcs)
		mm.NumFound = len(mm.Classes) + len(mm.Funcs)
		out = append(out, mm)
	}
	return out
}

// classDoc returns the descriptor's Doc, falling back to a throwaway
// instance's Describer hook for classes documented on the type rather than
// the descriptor. Construction failures degrade to an empty doc.
func classDoc(cls *apis.Class) (doc string) {
	if cls.Doc != "" || cls.New == nil {
		return cls.Doc
	}
	defer func() {
		if recover() != nil {
			doc = ""
		}
	}()
	if d, ok := cls.New().(apis.Describer); ok {
		return d.Describe()
	}
	return ""
}

// pathInScope reports whether a module path falls under the requested root.
func pathInScope(path, root string, recursive bool) bool {
	if root == "" {
		return true
	}
	if path == root {
		return true
	}
	return recursive && strings.HasPrefix(path, root+"/")
}

// WriteManifest encodes manifests as a YAML stream.
func WriteManifest(w io.Writer, manifests []ModuleManifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, mm := range manifests {
		if err := enc.Encode(mm); err != nil {
			return fmt.Errorf("parx(lookup): encoding manifest for %q: %w", mm.Module, err)
		}
	}
	return enc.Close()
}
