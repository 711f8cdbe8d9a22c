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

package clone

import (
	"fmt"
	"reflect"

	"dirpx.dev/parx/apis"
)

// NewClonablePlugin creates an apis.ClonePlugin for values that implement
// apis.Clonable, the opt-in convention for opaque values with their own
// copy routine. It runs ahead of all structural plugins so third-party
// clone conventions win over generic traversal.
func NewClonablePlugin() apis.ClonePlugin {
	return clonablePlugin{}
}

type clonablePlugin struct{}

// Ensure clonablePlugin implements apis.ClonePlugin.
var _ apis.ClonePlugin = clonablePlugin{}

// TryClone delegates to the value's own CloneValue.
func (clonablePlugin) TryClone(v any, _ apis.Cloner, _ apis.Config) (any, bool, error) {
	c, ok := v.(apis.Clonable)
	if !ok {
		return nil, false, nil
	}
	return c.CloneValue(), true, nil
}

// NewObjectPlugin creates an apis.ClonePlugin for parametric objects,
// reconstructing them through their class factory with the round-trip
// postcondition checked under eq.
func NewObjectPlugin(eq apis.Equaler) apis.ClonePlugin {
	return objectPlugin{eq: eq}
}

type objectPlugin struct {
	eq apis.Equaler
}

// Ensure objectPlugin implements apis.ClonePlugin.
var _ apis.ClonePlugin = objectPlugin{}

// TryClone clones apis.Object values via Object with the calling chain as
// the recursion hook, so custom plugins apply to nested components too.
func (p objectPlugin) TryClone(v any, recurse apis.Cloner, cfg apis.Config) (any, bool, error) {
	o, ok := v.(apis.Object)
	if !ok {
		return nil, false, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		// Typed nil components stay nil references.
		return v, true, nil
	}
	out, err := Object(o, recurse, p.eq, cfg)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// NewMapPlugin creates an apis.ClonePlugin for map values. Keys are copied
// as-is (map keys are comparable, hence atomic for cloning purposes);
// values are cloned depth-first through the chain.
func NewMapPlugin() apis.ClonePlugin {
	return mapPlugin{}
}

type mapPlugin struct{}

// Ensure mapPlugin implements apis.ClonePlugin.
var _ apis.ClonePlugin = mapPlugin{}

// TryClone rebuilds the map with cloned values.
func (mapPlugin) TryClone(v any, recurse apis.Cloner, cfg apis.Config) (any, bool, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false, nil
	}
	if rv.IsNil() {
		return v, true, nil
	}
	out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		cv, err := recurse.Clone(iter.Value().Interface(), cfg)
		if err != nil {
			return nil, false, err
		}
		ev, err := coerce(cv, rv.Type().Elem())
		if err != nil {
			return nil, false, fmt.Errorf("parx(clone): map value for key %v: %w", iter.Key().Interface(), err)
		}
		out.SetMapIndex(iter.Key(), ev)
	}
	return out.Interface(), true, nil
}

// NewSlicePlugin creates an apis.ClonePlugin for slices and arrays, cloning
// elements depth-first through the chain.
func NewSlicePlugin() apis.ClonePlugin {
	return slicePlugin{}
}

type slicePlugin struct{}

// Ensure slicePlugin implements apis.ClonePlugin.
var _ apis.ClonePlugin = slicePlugin{}

// TryClone rebuilds the slice or array with cloned elements.
func (slicePlugin) TryClone(v any, recurse apis.Cloner, cfg apis.Config) (any, bool, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false, nil
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v, true, nil
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		if err := cloneElems(rv, out, recurse, cfg); err != nil {
			return nil, false, err
		}
		return out.Interface(), true, nil

	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		if err := cloneElems(rv, out, recurse, cfg); err != nil {
			return nil, false, err
		}
		return out.Interface(), true, nil

	default:
		return nil, false, nil
	}
}

// cloneElems clones src elements into dst index-wise.
func cloneElems(src, dst reflect.Value, recurse apis.Cloner, cfg apis.Config) error {
	for i := 0; i < src.Len(); i++ {
		cv, err := recurse.Clone(src.Index(i).Interface(), cfg)
		if err != nil {
			return err
		}
		ev, err := coerce(cv, dst.Type().Elem())
		if err != nil {
			return fmt.Errorf("parx(clone): element %d: %w", i, err)
		}
		dst.Index(i).Set(ev)
	}
	return nil
}

// coerce converts a cloned any value back into a reflect.Value assignable
// to the destination type. A nil clone maps to the zero value.
func coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("clone changed type %s to %s", t, rv.Type())
	}
	return rv, nil
}
