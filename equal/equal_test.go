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

package equal

import (
	"math"
	"strings"
	"testing"

	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/config"
)

func TestDeep_Scalars(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"ints equal", 3, 3, true},
		{"ints differ", 3, 4, false},
		{"strings equal", "x", "x", true},
		{"type mismatch", 3, int64(3), false},
		{"both nil", nil, nil, true},
		{"one nil", nil, 3, false},
		{"floats equal", 1.5, 1.5, true},
		{"NaN equals NaN", math.NaN(), math.NaN(), true},
		{"NaN vs number", math.NaN(), 1.0, false},
		{"complex NaN equals", complex(math.NaN(), 2), complex(math.NaN(), 2), true},
		{"complex differs", complex(1, 2), complex(1, 3), false},
		{"bools", true, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Deep(tc.a, tc.b); got != tc.want {
				t.Fatalf("Deep(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDeep_Composites(t *testing.T) {
	three := 3
	threeToo := 3
	four := 4
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"slices equal", []int{1, 2}, []int{1, 2}, true},
		{"slices differ", []int{1, 2}, []int{1, 3}, false},
		{"slice length", []int{1}, []int{1, 2}, false},
		{"slice with NaN", []float64{math.NaN()}, []float64{math.NaN()}, true},
		{"maps equal", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		{"maps differ", map[string]int{"a": 1}, map[string]int{"a": 2}, false},
		{"map key sets", map[string]int{"a": 1}, map[string]int{"b": 1}, false},
		{"nested maps", map[string]any{"a": []int{1}}, map[string]any{"a": []int{1}}, true},
		{"pointers same referent", &three, &three, true},
		{"pointers equal referents", &three, &threeToo, true},
		{"pointers differ", &three, &four, false},
		{"structs equal", struct{ X int }{1}, struct{ X int }{1}, true},
		{"structs differ", struct{ X int }{1}, struct{ X int }{2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Deep(tc.a, tc.b); got != tc.want {
				t.Fatalf("Deep(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestExplain_LocatesFirstDifference(t *testing.T) {
	cases := []struct {
		name    string
		a, b    any
		wantSub string
	}{
		{"slice index", []int{1, 2, 3}, []int{1, 9, 3}, "[1]"},
		{"map key", map[string]int{"a": 1, "b": 2}, map[string]int{"a": 1, "b": 9}, `["b"]`},
		{"nested path", map[string]any{"xs": []int{1, 2}}, map[string]any{"xs": []int{1, 3}}, `["xs"][1]`},
		{"struct field", struct{ X, Y int }{1, 2}, struct{ X, Y int }{1, 3}, ".Y"},
		{"type mismatch", 1, "1", "type mismatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eq, msg := Explain(tc.a, tc.b)
			if eq {
				t.Fatalf("Explain reported equal for %v vs %v", tc.a, tc.b)
			}
			if !strings.Contains(msg, tc.wantSub) {
				t.Fatalf("msg %q does not contain %q", msg, tc.wantSub)
			}
		})
	}
}

func TestExplain_EqualGivesEmptyMessage(t *testing.T) {
	eq, msg := Explain([]int{1, 2}, []int{1, 2})
	if !eq || msg != "" {
		t.Fatalf("Explain = (%v, %q), want (true, \"\")", eq, msg)
	}
}

// intSeq is a Sequence fixture.
type intSeq []int

func (s intSeq) Len() int     { return len(s) }
func (s intSeq) At(i int) any { return s[i] }

func TestSequencePlugin(t *testing.T) {
	if !Deep(intSeq{1, 2}, intSeq{1, 2}) {
		t.Fatalf("equal sequences compared unequal")
	}
	if Deep(intSeq{1, 2}, intSeq{1, 3}) {
		t.Fatalf("unequal sequences compared equal")
	}
	eq, msg := Explain(intSeq{1, 2}, intSeq{1})
	if eq || !strings.Contains(msg, "length mismatch") {
		t.Fatalf("Explain = (%v, %q)", eq, msg)
	}
	if Deep(intSeq{1}, []int{1}) {
		t.Fatalf("sequence vs non-sequence must be unequal")
	}
}

// miniTable is a Table fixture.
type miniTable struct {
	cols []string
	rows []map[string]any
}

func (t *miniTable) Columns() []string { return t.cols }
func (t *miniTable) Len() int          { return len(t.rows) }
func (t *miniTable) Cell(row int, col string) any {
	return t.rows[row][col]
}

func TestTablePlugin(t *testing.T) {
	mk := func(vals ...int) *miniTable {
		tb := &miniTable{cols: []string{"v"}}
		for _, v := range vals {
			tb.rows = append(tb.rows, map[string]any{"v": v})
		}
		return tb
	}
	if !Deep(mk(1, 2), mk(1, 2)) {
		t.Fatalf("equal tables compared unequal")
	}
	eq, msg := Explain(mk(1, 2), mk(1, 9))
	if eq || !strings.Contains(msg, "[1]") {
		t.Fatalf("Explain = (%v, %q)", eq, msg)
	}
	other := &miniTable{cols: []string{"w"}}
	eq, msg = Explain(mk(), other)
	if eq || !strings.Contains(msg, ".columns") {
		t.Fatalf("Explain = (%v, %q)", eq, msg)
	}
}

// failPlugin handles everything with a fixed verdict, to exercise ordering.
type failPlugin struct{ verdict bool }

func (p failPlugin) TryEqual(a, b any, rec apis.Equaler, cfg apis.Config) (bool, string, bool) {
	return p.verdict, ": forced", true
}

func TestChain_PluginOrderWins(t *testing.T) {
	eq := New(failPlugin{verdict: false})
	if eq.Equal(1, 1, config.DefaultConfig()) {
		t.Fatalf("first plugin verdict must win")
	}
	eq = New(nil, failPlugin{verdict: true})
	if !eq.Equal(1, 2, config.DefaultConfig()) {
		t.Fatalf("nil plugins must be skipped, not break the chain")
	}
}

func TestChain_DepthGuard(t *testing.T) {
	// Self-referential map forces unbounded recursion without a guard.
	m := map[string]any{}
	m["self"] = m
	n := map[string]any{}
	n["self"] = n

	cfg := config.NewConfig(config.WithMaxDepth(8))
	eq, msg := Default().Explain(m, n, cfg)
	if eq {
		t.Fatalf("cyclic values should fail the depth guard")
	}
	if !strings.Contains(msg, "max compare depth") {
		t.Fatalf("msg %q does not mention depth guard", msg)
	}
}
