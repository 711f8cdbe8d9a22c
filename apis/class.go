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

package apis

// Class is an explicit, declarative class descriptor for a parametric object
// type. Descriptors are created once at definition time (typically as package
// level vars) and registered with the lookup registry; they replace implicit
// language-level inheritance of mutable class attributes with an explicit
// ancestor chain.
//
// A Class value must be treated as immutable after definition.
type Class struct {
	// Path is the dotted module path the class belongs to, e.g. "parx.widgets".
	Path string

	// Name is the class name within its module, e.g. "Widget".
	Name string

	// Doc is an optional one-line description surfaced in package manifests.
	Doc string

	// Parent is the direct ancestor descriptor, or nil for a root contract.
	// Tag resolution walks this chain most-derived first.
	Parent *Class

	// Tags holds the class-level tag defaults declared by this class itself,
	// not including ancestor declarations.
	Tags map[string]any

	// New constructs a fresh instance with default parameter values, bound
	// to this descriptor. Required for cloning and discovery-driven testing.
	New func() Object

	// Examples optionally returns one or more parameter sets that produce
	// valid test instances. Consumed by the conformance harness; a nil hook
	// falls back to the no-argument factory.
	Examples func() []Params
}

// FullPath returns the dotted "path.Name" identifier of the class.
func (c *Class) FullPath() string {
	if c == nil {
		return ""
	}
	if c.Path == "" {
		return c.Name
	}
	return c.Path + "." + c.Name
}

// Ancestors returns the ancestor chain from the direct parent up to the root,
// most-derived first. The receiver itself is not included.
func (c *Class) Ancestors() []*Class {
	if c == nil {
		return nil
	}
	var out []*Class
	for p := c.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Is reports whether base is the receiver itself or one of its ancestors.
func (c *Class) Is(base *Class) bool {
	if base == nil {
		return false
	}
	for x := c; x != nil; x = x.Parent {
		if x == base {
			return true
		}
	}
	return false
}

// ResolvedTags returns the complete class-level tag mapping, merging the
// ancestor chain with closest-ancestor-wins override semantics. Instance
// level overrides are not visible here; this is the resolution used by
// discovery filters before instantiation.
func (c *Class) ResolvedTags() map[string]any {
	out := map[string]any{}
	if c == nil {
		return out
	}
	// Merge root-first so that more derived declarations overwrite.
	var chain []*Class
	for x := c; x != nil; x = x.Parent {
		chain = append(chain, x)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Tags {
			out[k] = v
		}
	}
	return out
}

// ResolvedTag returns the class-level value of a single tag, walking the
// ancestor chain most-derived first. ok is false if no class in the chain
// declares the tag.
func (c *Class) ResolvedTag(name string) (value any, ok bool) {
	for x := c; x != nil; x = x.Parent {
		if x.Tags != nil {
			if v, found := x.Tags[name]; found {
				return v, true
			}
		}
	}
	return nil, false
}
