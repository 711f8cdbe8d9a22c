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

// Params is a mapping from parameter name to current parameter value.
//
// Keys are the declared parameter names of an object. For deep parameter
// views, nested parameters of component objects appear under composite keys
// joined by double underscore, e.g. "outer__inner". Values may be primitive
// scalars, containers, opaque third-party values, or Objects (nesting).
type Params map[string]any

// Object is the parametric-object contract.
//
// An Object exposes its full constructor-argument state for inspection and
// round-tripping, and carries declarative tags describing behavioral
// characteristics. Concrete types opt in by embedding base.Base and binding
// it to a Class descriptor at construction time.
type Object interface {
	// Class returns the class descriptor the instance was bound to.
	// It is nil for unbound instances.
	Class() *Class

	// Params returns the current parameter values of the object.
	// If deep is true, parameters of component Objects are included under
	// "outer__inner" composite keys, recursively.
	Params(deep bool) (Params, error)

	// SetParams updates parameter values. Composite "outer__inner" keys
	// address parameters of component Objects. Application is best-effort
	// sequential, not atomic: keys applied before a failing key stay applied.
	SetParams(updates Params) error

	// Tags returns the complete resolved tag mapping of the instance,
	// including class-level defaults and instance-level overrides.
	Tags() map[string]any

	// Tag returns the resolved value of a single tag, or an error if the
	// tag is not declared anywhere in the ancestor chain or on the instance.
	Tag(name string) (any, error)
}
