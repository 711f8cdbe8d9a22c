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

package base

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"dirpx.dev/parx"
	"dirpx.dev/parx/apis"
	uref "dirpx.dev/parx/utils/reflect"
)

var (
	// ErrUnknownParam is returned by SetParams for a key that matches no
	// declared parameter and no unique composite-key suffix.
	ErrUnknownParam = errors.New("parx(base): unknown parameter")
	// ErrAmbiguousParam is returned by SetParams when a suffix alias
	// matches more than one composite parameter key.
	ErrAmbiguousParam = errors.New("parx(base): ambiguous parameter suffix")
	// ErrInvalidParamValue is returned by SetParams for a value that is not
	// assignable to the parameter's declared field type.
	ErrInvalidParamValue = errors.New("parx(base): invalid parameter value")
	// ErrParamCycle is returned by deep parameter walks over a
	// self-referential parameter graph.
	ErrParamCycle = errors.New("parx(base): cyclic parameter graph")
	// ErrNotIntrospectable mirrors the introspector's contract-violation
	// error for convenience of callers matching with errors.Is.
	ErrNotIntrospectable = uref.ErrNotIntrospectable
)

// fields resolves the declared parameter fields and the addressable struct
// value of the bound concrete instance.
func (b *Base) fields() ([]uref.Field, reflect.Value, error) {
	if b == nil || b.self == nil {
		return nil, reflect.Value{}, ErrNotBound
	}
	rv, err := uref.StructValue(b.self)
	if err != nil {
		return nil, reflect.Value{}, err
	}
	fs, err := uref.ParamFields(rv.Type())
	if err != nil {
		return nil, reflect.Value{}, err
	}
	return fs, rv, nil
}

// ParamNames returns the declared parameter names: alphabetically sorted
// when sorted is true, in declaration order otherwise.
func (b *Base) ParamNames(sorted bool) ([]string, error) {
	fs, _, err := b.fields()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	if sorted {
		sort.Strings(names)
	}
	return names, nil
}

// Params returns the current parameter values. With deep true, parameters
// of component objects are included under composite "outer__inner" keys,
// recursively to unbounded depth, guarded against cyclic parameter graphs.
func (b *Base) Params(deep bool) (apis.Params, error) {
	fs, rv, err := b.fields()
	if err != nil {
		return nil, err
	}
	out := make(apis.Params, len(fs))
	for _, f := range fs {
		out[f.Name] = rv.FieldByIndex(f.Index).Interface()
	}
	if !deep {
		return out, nil
	}

	shallow := make(apis.Params, len(out))
	for k, v := range out {
		shallow[k] = v
	}
	seen := map[apis.Object]bool{b.self: true}
	if err := addNested(out, "", shallow, seen, 0, parx.Config().MaxDepth); err != nil {
		return nil, err
	}
	return out, nil
}

// MustParams is like Params but panics on error. Intended for contexts
// where the object is known to be well-formed, such as tests and examples.
func (b *Base) MustParams(deep bool) apis.Params {
	p, err := b.Params(deep)
	if err != nil {
		panic(err)
	}
	return p
}

// addNested flattens component parameters into dst under composite keys.
// seen is path-scoped: diamond-shaped sharing is legal, true cycles fail.
func addNested(dst apis.Params, prefix string, shallow apis.Params, seen map[apis.Object]bool, depth, maxDepth int) error {
	if maxDepth > 0 && depth > maxDepth {
		return fmt.Errorf("%w: nesting exceeds depth %d", ErrParamCycle, maxDepth)
	}
	for name, v := range shallow {
		o, ok := asComponent(v)
		if !ok {
			continue
		}
		if seen[o] {
			return fmt.Errorf("%w: parameter %q revisits %s", ErrParamCycle,
				prefix+name, o.Class().FullPath())
		}
		sub, err := o.Params(false)
		if err != nil {
			return fmt.Errorf("parx(base): component %q: %w", prefix+name, err)
		}
		for k, sv := range sub {
			dst[prefix+name+"__"+k] = sv
		}
		seen[o] = true
		if err := addNested(dst, prefix+name+"__", sub, seen, depth+1, maxDepth); err != nil {
			return err
		}
		delete(seen, o)
	}
	return nil
}

// asComponent reports whether v is a usable (non-nil) parametric component.
func asComponent(v any) (apis.Object, bool) {
	o, ok := v.(apis.Object)
	if !ok || o == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, false
	}
	return o, true
}

// SetParams updates parameter values. Flat keys address declared parameters
// directly; composite "outer__inner" keys recurse into component objects.
// A flat key matching no parameter is retried as a composite-key suffix: if
// it is the suffix of exactly one composite key, it aliases that key;
// multiple matches fail with ErrAmbiguousParam.
//
// Application is best-effort sequential in sorted key order, not atomic:
// keys applied before a failing key stay applied.
func (b *Base) SetParams(updates apis.Params) error {
	if len(updates) == 0 {
		return nil
	}
	fs, rv, err := b.fields()
	if err != nil {
		return err
	}
	byName := make(map[string]uref.Field, len(fs))
	for _, f := range fs {
		byName[f.Name] = f
	}

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := b.setOne(key, updates[key], byName, rv); err != nil {
			return err
		}
	}
	return nil
}

// setOne applies a single update, resolving suffix aliases as needed.
func (b *Base) setOne(key string, value any, byName map[string]uref.Field, rv reflect.Value) error {
	head, rest, composite := strings.Cut(key, "__")

	f, known := byName[head]
	if !known {
		full, err := b.resolveSuffix(key, byName)
		if err != nil {
			return err
		}
		head, rest, composite = strings.Cut(full, "__")
		f = byName[head]
	}

	fv := rv.FieldByIndex(f.Index)
	if !composite {
		return assignParam(fv, f.Name, value)
	}

	// Composite key: recurse into the component, then reassign it as the
	// outer parameter value.
	comp, ok := asComponent(fv.Interface())
	if !ok {
		return fmt.Errorf("%w: %q is not a parametric component (key %q)",
			ErrUnknownParam, head, key)
	}
	if err := comp.SetParams(apis.Params{rest: value}); err != nil {
		return fmt.Errorf("parx(base): component %q: %w", head, err)
	}
	return assignParam(fv, f.Name, comp)
}

// resolveSuffix maps an unknown key to the unique composite parameter key
// it is a "__"-suffix of.
func (b *Base) resolveSuffix(key string, byName map[string]uref.Field) (string, error) {
	deep, err := b.Params(true)
	if err != nil {
		return "", err
	}
	var matches []string
	for full := range deep {
		if strings.HasSuffix(full, "__"+key) {
			matches = append(matches, full)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		valid, _ := b.ParamNames(true)
		return "", fmt.Errorf("%w: %q, valid parameters: %v", ErrUnknownParam, key, valid)
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("%w: %q matches %v", ErrAmbiguousParam, key, matches)
	}
}

// assignParam writes value into the parameter field, converting nil to the
// zero value and rejecting unassignable types.
func assignParam(fv reflect.Value, name string, value any) error {
	if !fv.CanSet() {
		return fmt.Errorf("%w: %q is not settable", ErrInvalidParamValue, name)
	}
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(fv.Type()) {
		return fmt.Errorf("%w: %q wants %s, got %s", ErrInvalidParamValue,
			name, fv.Type(), v.Type())
	}
	fv.Set(v)
	return nil
}

// ParamDefaults returns the default parameter values: the parameters of a
// fresh factory-constructed instance of the same class.
func (b *Base) ParamDefaults() (apis.Params, error) {
	if b == nil || b.self == nil {
		return nil, ErrNotBound
	}
	if b.class == nil || b.class.New == nil {
		return nil, fmt.Errorf("%w: class %s", ErrNoFactory, b.class.FullPath())
	}
	fresh := b.class.New()
	if fresh == nil {
		return nil, fmt.Errorf("%w: class %s factory returned nil", ErrNoFactory, b.class.FullPath())
	}
	return fresh.Params(false)
}
