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
	"reflect"
	"testing"
)

// Local test types.

type plain struct {
	Size  int    `param:"size"`
	Color string `param:"color"`
	Note  string
}

type withSkips struct {
	Kept    int
	Ignored int `param:"-"`
	hidden  int
}

type withFitted struct {
	Alpha float64 `param:"alpha"`
	Coef_ []float64
	N_    int
}

type parent struct {
	Size int `param:"size"`
	Kind string
}

type child struct {
	parentEmbed
	Size int `param:"size"` // shadows the embedded declaration
}

type parentEmbed = parent

type badUnexported struct {
	secret int `param:"secret"`
}

type badCatchAll struct {
	Rest map[string]any `param:"*"`
}

func names(fs []Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

func TestParamFields_Names(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want []string
	}{
		{"tagged and untagged", reflect.TypeOf(plain{}), []string{"size", "color", "Note"}},
		{"pointer unwraps", reflect.TypeOf(&plain{}), []string{"size", "color", "Note"}},
		{"skip tag and unexported", reflect.TypeOf(withSkips{}), []string{"Kept"}},
		{"fitted excluded", reflect.TypeOf(withFitted{}), []string{"alpha"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs, err := ParamFields(tc.typ)
			if err != nil {
				t.Fatalf("ParamFields: %v", err)
			}
			if got := names(fs); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("names = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParamFields_ShadowingWins(t *testing.T) {
	fs, err := ParamFields(reflect.TypeOf(child{}))
	if err != nil {
		t.Fatalf("ParamFields: %v", err)
	}
	var size *Field
	for i := range fs {
		if fs[i].Name == "size" {
			if size != nil {
				t.Fatalf("duplicate size field resolved: %v", names(fs))
			}
			size = &fs[i]
		}
	}
	if size == nil {
		t.Fatalf("size not resolved: %v", names(fs))
	}
	// The shadowing declaration sits at the top level of child.
	if len(size.Index) != 1 {
		t.Fatalf("size resolved to embedded declaration, index %v", size.Index)
	}
}

func TestFittedFields(t *testing.T) {
	fs, err := FittedFields(reflect.TypeOf(withFitted{}))
	if err != nil {
		t.Fatalf("FittedFields: %v", err)
	}
	if got := names(fs); !reflect.DeepEqual(got, []string{"Coef_", "N_"}) {
		t.Fatalf("fitted names = %v", got)
	}
	for _, f := range fs {
		if !f.Fitted {
			t.Fatalf("field %s not marked fitted", f.Name)
		}
	}
}

func TestParamFields_ContractViolations(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"tagged unexported field", reflect.TypeOf(badUnexported{})},
		{"catch-all field", reflect.TypeOf(badCatchAll{})},
		{"non-struct", reflect.TypeOf(42)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParamFields(tc.typ); !errors.Is(err, ErrNotIntrospectable) {
				t.Fatalf("err = %v, want ErrNotIntrospectable", err)
			}
		})
	}
}

func TestParamFields_NilType(t *testing.T) {
	if _, err := ParamFields(nil); !errors.Is(err, ErrReflectNilType) {
		t.Fatalf("err = %v, want ErrReflectNilType", err)
	}
}

func TestParamFields_CacheIsStable(t *testing.T) {
	a, err := ParamFields(reflect.TypeOf(plain{}))
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	b, err := ParamFields(reflect.TypeOf(plain{}))
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("cached result differs: %v vs %v", a, b)
	}
}

func TestStructValue(t *testing.T) {
	p := &plain{Size: 3}
	rv, err := StructValue(p)
	if err != nil {
		t.Fatalf("StructValue: %v", err)
	}
	if !rv.CanSet() && !rv.Field(0).CanSet() {
		t.Fatalf("struct value not settable through pointer")
	}

	if _, err := StructValue(nil); err == nil {
		t.Fatalf("nil input should fail")
	}
	var np *plain
	if _, err := StructValue(np); !errors.Is(err, ErrNotIntrospectable) {
		t.Fatalf("nil pointer: err = %v", err)
	}
	if _, err := StructValue("nope"); !errors.Is(err, ErrNotIntrospectable) {
		t.Fatalf("non-struct: err = %v", err)
	}
}
