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

// Package equal implements the structural deep-equality comparator.
//
// An Equaler is an ordered chain of plugins followed by a generic structural
// comparator. Plugins handle value shapes that need custom treatment
// (sequences, tables, parametric objects) and are always tried before any
// generic length/iteration based comparison; the generic tail never needs to
// recover from a failed scalar truth test because every comparison attempt
// is a typed (handled, verdict) result.
//
// Two NaN values at the same position compare equal, diverging from IEEE
// semantics: the comparator checks reproducibility, not numeric order.
package equal

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/config"
)

// New constructs an apis.Equaler that tries the given plugins in order and
// falls back to generic structural comparison. Nil plugins are ignored.
func New(plugins ...apis.EqualPlugin) apis.Equaler {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.EqualPlugin, 0, len(plugins))
	for _, p := range plugins {
		if p != nil {
			out = append(out, p)
		}
	}
	return chain{plugins: out}
}

// defaultEqualer carries the stock plugin chain: sequences and tables first,
// then parametric objects, then the generic tail.
var defaultEqualer = New(
	NewSequencePlugin(),
	NewTablePlugin(),
	NewObjectPlugin(),
)

// Default returns the stock Equaler with the default plugin chain.
func Default() apis.Equaler {
	return defaultEqualer
}

// Deep reports structural deep equality of a and b using the default chain
// and default configuration.
func Deep(a, b any) bool {
	return defaultEqualer.Equal(a, b, config.DefaultConfig())
}

// Explain is like Deep but also returns a diagnostic reason locating the
// first difference. The reason is empty when the values are equal.
func Explain(a, b any) (bool, string) {
	return defaultEqualer.Explain(a, b, config.DefaultConfig())
}

// chain is an immutable, order-preserving comparator over a set of plugins.
// depth counts recursion steps; the chain hands out depth-incremented copies
// of itself as the recursion hook for plugins.
type chain struct {
	plugins []apis.EqualPlugin
	depth   int
}

// Equal reports whether a and b are structurally equal under cfg.
func (c chain) Equal(a, b any, cfg apis.Config) bool {
	eq, _ := c.Explain(a, b, cfg)
	return eq
}

// Explain runs plugins in order until one handles the pair, then falls back
// to the generic comparator.
func (c chain) Explain(a, b any, cfg apis.Config) (bool, string) {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	if c.depth > maxDepth {
		return false, fmt.Sprintf(": max compare depth %d exceeded", maxDepth)
	}
	rec := chain{plugins: c.plugins, depth: c.depth + 1}
	for _, p := range c.plugins {
		if eq, msg, handled := p.TryEqual(a, b, rec, cfg); handled {
			return eq, msg
		}
	}
	return generic(a, b, rec, cfg)
}

// generic is the structural tail comparator: primitives by value (NaN-equal
// floats), sequences element-wise after a length check, mappings by key set
// then values, pointers by referent, structs by exported fields.
func generic(a, b any, rec apis.Equaler, cfg apis.Config) (bool, string) {
	if a == nil && b == nil {
		return true, ""
	}
	if a == nil || b == nil {
		return false, fmt.Sprintf(": nil mismatch, x: %v, y: %v", a, b)
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false, fmt.Sprintf(": type mismatch, x: %s, y: %s", va.Type(), vb.Type())
	}

	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		return leaf(floatEqualNaN(va.Float(), vb.Float()), a, b)

	case reflect.Complex64, reflect.Complex128:
		ca, cb := va.Complex(), vb.Complex()
		eq := floatEqualNaN(real(ca), real(cb)) && floatEqualNaN(imag(ca), imag(cb))
		return leaf(eq, a, b)

	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return leaf(a == b, a, b)

	case reflect.Slice, reflect.Array:
		if va.Len() != vb.Len() {
			return false, fmt.Sprintf(": length mismatch, x: %d, y: %d", va.Len(), vb.Len())
		}
		for i := 0; i < va.Len(); i++ {
			eq, msg := rec.Explain(va.Index(i).Interface(), vb.Index(i).Interface(), cfg)
			if !eq {
				return false, fmt.Sprintf("[%d]%s", i, msg)
			}
		}
		return true, ""

	case reflect.Map:
		return mapEqual(va, vb, rec, cfg)

	case reflect.Ptr:
		if va.IsNil() || vb.IsNil() {
			return leaf(va.IsNil() && vb.IsNil(), a, b)
		}
		if va.Pointer() == vb.Pointer() {
			return true, ""
		}
		return rec.Explain(va.Elem().Interface(), vb.Elem().Interface(), cfg)

	case reflect.Struct:
		return structEqual(va, vb, rec, cfg)

	case reflect.Func, reflect.Chan:
		if va.IsNil() && vb.IsNil() {
			return true, ""
		}
		return leaf(va.Pointer() == vb.Pointer(), a, b)

	default:
		return leaf(reflect.DeepEqual(a, b), a, b)
	}
}

// mapEqual compares key sets first, then values recursively. Keys are
// visited in a deterministic order so diagnostics are stable.
func mapEqual(va, vb reflect.Value, rec apis.Equaler, cfg apis.Config) (bool, string) {
	if va.Len() != vb.Len() {
		return false, fmt.Sprintf(".keys: length mismatch, x: %d, y: %d", va.Len(), vb.Len())
	}
	keys := va.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		wv := vb.MapIndex(k)
		if !wv.IsValid() {
			return false, fmt.Sprintf(".keys: %v missing in y", k.Interface())
		}
		eq, msg := rec.Explain(va.MapIndex(k).Interface(), wv.Interface(), cfg)
		if !eq {
			return false, fmt.Sprintf("[%#v]%s", k.Interface(), msg)
		}
	}
	return true, ""
}

// structEqual compares exported fields recursively. A struct with no
// exported fields is compared wholesale via reflect.DeepEqual.
func structEqual(va, vb reflect.Value, rec apis.Equaler, cfg apis.Config) (bool, string) {
	t := va.Type()
	exported := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		exported++
		eq, msg := rec.Explain(va.Field(i).Interface(), vb.Field(i).Interface(), cfg)
		if !eq {
			return false, "." + f.Name + msg
		}
	}
	if exported == 0 {
		return leaf(reflect.DeepEqual(va.Interface(), vb.Interface()), va.Interface(), vb.Interface())
	}
	return true, ""
}

// floatEqualNaN is value equality with NaN == NaN.
func floatEqualNaN(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}

// leaf formats the terminal diagnostic for a scalar comparison.
func leaf(eq bool, a, b any) (bool, string) {
	if eq {
		return true, ""
	}
	return false, fmt.Sprintf(": x = %v, y = %v", a, b)
}
