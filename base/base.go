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

// Package base provides the embeddable implementations of the parametric
// object contract: Base for plain objects and Estimator for fittable ones.
//
// A concrete type embeds Base, declares its parameters as exported struct
// fields, and binds itself to an apis.Class descriptor in its constructor:
//
//	type Widget struct {
//		base.Base
//		Size  int    `param:"size"`
//		Color string `param:"color"`
//	}
//
//	var WidgetClass = &apis.Class{
//		Path:   "widgets",
//		Name:   "Widget",
//		Parent: base.RootClass,
//		Tags:   map[string]any{"capability:parallel": false},
//		New:    func() apis.Object { return NewWidget() },
//	}
//
//	func NewWidget() *Widget {
//		w := &Widget{Size: 10, Color: "red"}
//		w.Bind(WidgetClass, w)
//		return w
//	}
//
// Everything else — parameter round-tripping, composite "outer__inner"
// access, tag resolution, config overlays, cloning, display — comes from
// the embedded Base.
package base

import (
	"errors"

	"dirpx.dev/parx"
	"dirpx.dev/parx/apis"
)

var (
	// ErrNotBound is returned when a parametric operation is invoked on an
	// object that was never bound to a class descriptor.
	ErrNotBound = errors.New("parx(base): object not bound to a class")
	// ErrNoFactory is returned when an operation needs a fresh instance but
	// the bound class descriptor has no usable factory.
	ErrNoFactory = errors.New("parx(base): class has no usable factory")
	// ErrNilClass is the panic value for Bind with a nil class descriptor.
	ErrNilClass = errors.New("parx(base): nil class descriptor")
	// ErrNilSelf is the panic value for Bind with a nil self reference.
	ErrNilSelf = errors.New("parx(base): nil self reference")
)

// RootClass is the root ancestor descriptor of all parametric objects.
// Author-defined class chains should terminate here so that ancestry-based
// discovery over the whole contract works out of the box.
var RootClass = &apis.Class{
	Path: "parx",
	Name: "Object",
	Doc:  "Root contract for parametric objects.",
}

// Base is the embeddable core of a parametric object. The zero value is
// unusable until Bind associates it with its class descriptor and the
// concrete outer struct.
//
// Base is not synchronized; an instance is owned by one goroutine at a time.
type Base struct {
	// class is the descriptor the instance was bound to.
	class *apis.Class
	// self is the concrete outer struct, for field reflection.
	self apis.Object
	// dynTags holds instance-level tag overrides, keyed by canonical name.
	dynTags map[string]any
	// dynConfig holds instance-level config overrides.
	dynConfig map[string]any
}

// Bind associates the embedded Base with its class descriptor and the
// concrete outer instance. It must be called exactly once, in the
// constructor, with the outer struct pointer as self. Bind panics on nil
// arguments; anything else is a programmer error surfaced lazily by the
// parameter operations.
func (b *Base) Bind(class *apis.Class, self apis.Object) {
	if class == nil {
		panic(ErrNilClass)
	}
	if self == nil {
		panic(ErrNilSelf)
	}
	b.class = class
	b.self = self
}

// Class returns the class descriptor the instance was bound to, or nil for
// an unbound instance.
func (b *Base) Class() *apis.Class {
	if b == nil {
		return nil
	}
	return b.class
}

// Clone produces a new, independent instance with parameter-equal state,
// using the global clone chain. Nested parametric parameters are cloned
// recursively, never aliased. The round-trip equality postcondition is
// always checked.
func (b *Base) Clone() (apis.Object, error) {
	if b == nil || b.self == nil {
		return nil, ErrNotBound
	}
	return parx.Clone(b.self)
}

// Equals reports parameter equality: identical class and deep-equal shallow
// parameter mappings. It is false whenever either side's parameters cannot
// be read.
func (b *Base) Equals(other apis.Object) bool {
	if b == nil || b.self == nil || other == nil {
		return false
	}
	if other.Class() != b.class {
		return false
	}
	pa, err := b.Params(false)
	if err != nil {
		return false
	}
	pb, err := other.Params(false)
	if err != nil {
		return false
	}
	return parx.DeepEqual(pa, pb)
}
