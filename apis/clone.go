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

// Cloner produces independent copies of parameter values. A Cloner is
// typically an ordered chain of ClonePlugins; the first plugin that handles
// a value wins. Values no plugin handles are returned as-is (atomic values
// are copied by reference).
type Cloner interface {
	// Clone returns an independent copy of v according to cfg.
	Clone(v any, cfg Config) (any, error)
}

// ClonePlugin is a pluggable clone step. A Cloner chains multiple plugins in
// order (e.g. Clonable -> Object -> Map -> Slice), each declaring which value
// shapes it handles.
type ClonePlugin interface {
	// TryClone attempts to clone v. recurse is the full chain, for
	// depth-first descent into container elements and components.
	// It returns (clone, true, nil) if handled; (nil, false, nil) to fall
	// through to the next plugin; a non-nil error aborts the clone.
	TryClone(v any, recurse Cloner, cfg Config) (clone any, handled bool, err error)
}

// Clonable is the opt-in convention for opaque values that know how to copy
// themselves. Values implementing it are cloned via CloneValue ahead of all
// structural plugins.
type Clonable interface {
	// CloneValue returns an independent copy of the receiver.
	CloneValue() any
}
