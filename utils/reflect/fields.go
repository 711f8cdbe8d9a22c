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

package reflect

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrNotIntrospectable indicates that a type violates the introspection
	// contract: it is not a struct, declares a catch-all `param:"*"` field,
	// or tags an unexported field as a parameter.
	ErrNotIntrospectable = errors.New("reflect: type is not introspectable")
)

// Field describes one declared parameter or fitted-state field of an object
// struct, recovered without instantiating the type.
type Field struct {
	// Name is the parameter name: the `param` struct tag if present,
	// otherwise the field name.
	Name string
	// Index is the field index chain for reflect.Value.FieldByIndex.
	Index []int
	// Type is the declared field type.
	Type reflect.Type
	// Fitted reports whether the field holds derived/learned state,
	// signalled by a trailing underscore in the field name.
	Fitted bool
}

// fieldSet is the memoized introspection result for one struct type.
type fieldSet struct {
	fields []Field
	err    error
}

// fieldCache caches introspection results by struct type. Introspection is
// pure, so the cache never needs invalidation.
var fieldCache sync.Map // key: reflect.Type, val: *fieldSet

// ParamFields returns the declared parameter fields of t, in declaration
// order with embedded (inherited) fields resolved by Go visibility rules:
// a more derived declaration shadows an embedded one, mirroring
// closest-ancestor-wins resolution.
//
// t may be a struct type or pointer to struct. The walk is side-effect free
// and memoized per type.
func ParamFields(t reflect.Type) ([]Field, error) {
	fs, err := allFields(t)
	if err != nil {
		return nil, err
	}
	out := make([]Field, 0, len(fs))
	for _, f := range fs {
		if !f.Fitted {
			out = append(out, f)
		}
	}
	return out, nil
}

// FittedFields returns the derived/learned-state fields of t: exported
// fields whose name ends in a trailing underscore. Same contract as
// ParamFields otherwise.
func FittedFields(t reflect.Type) ([]Field, error) {
	fs, err := allFields(t)
	if err != nil {
		return nil, err
	}
	out := make([]Field, 0, len(fs))
	for _, f := range fs {
		if f.Fitted {
			out = append(out, f)
		}
	}
	return out, nil
}

// allFields resolves and memoizes the full field set of t.
func allFields(t reflect.Type) ([]Field, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if v, ok := fieldCache.Load(t); ok {
		set := v.(*fieldSet)
		return set.fields, set.err
	}

	set := &fieldSet{}
	set.fields, set.err = scanFields(t)
	fieldCache.Store(t, set)
	return set.fields, set.err
}

// scanFields does the uncached introspection work.
func scanFields(t reflect.Type) ([]Field, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrNotIntrospectable, t)
	}

	var out []Field
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous {
			// Embedded descriptors themselves are not parameters; their
			// promoted fields appear as separate visible fields.
			continue
		}
		tag := sf.Tag.Get("param")
		if sf.PkgPath != "" {
			// Unexported: never a parameter, but tagging one is a
			// contract violation worth failing loudly on.
			if tag != "" && tag != "-" {
				return nil, fmt.Errorf("%w: %s tags unexported field %s as parameter",
					ErrNotIntrospectable, t, sf.Name)
			}
			continue
		}
		if tag == "-" {
			continue
		}
		if tag == "*" {
			// Catch-all parameter maps cannot be introspected deterministically.
			return nil, fmt.Errorf("%w: %s declares catch-all parameter field %s",
				ErrNotIntrospectable, t, sf.Name)
		}

		name := sf.Name
		if tag != "" {
			if i := strings.IndexByte(tag, ','); i >= 0 {
				tag = tag[:i]
			}
			if tag != "" {
				name = tag
			}
		}
		out = append(out, Field{
			Name:   name,
			Index:  sf.Index,
			Type:   sf.Type,
			Fitted: strings.HasSuffix(sf.Name, "_"),
		})
	}
	return out, nil
}

// StructValue dereferences v down to its addressable struct value.
// v must be a non-nil pointer to struct for fields to be settable.
func StructValue(v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, ErrReflectNilType
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil pointer", ErrNotIntrospectable)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T is not a struct", ErrNotIntrospectable, v)
	}
	return rv, nil
}
