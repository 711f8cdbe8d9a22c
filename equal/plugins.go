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
	"fmt"
	"reflect"

	"dirpx.dev/parx/apis"
)

// Sequence is the shape contract for numeric array-like values with a
// defined element order but no native slice representation. The sequence
// plugin compares such values index-wise ahead of any generic iteration.
type Sequence interface {
	// Len returns the number of elements.
	Len() int
	// At returns the element at index i.
	At(i int) any
}

// Table is the shape contract for column-oriented tabular values. The table
// plugin compares column sets, then cells, ahead of any generic comparison.
type Table interface {
	// Columns returns the ordered column names.
	Columns() []string
	// Len returns the number of rows.
	Len() int
	// Cell returns the value at the given row and column.
	Cell(row int, col string) any
}

// NewSequencePlugin creates an apis.EqualPlugin that compares Sequence
// values element-wise with a length check first.
func NewSequencePlugin() apis.EqualPlugin {
	return sequencePlugin{}
}

type sequencePlugin struct{}

// Ensure sequencePlugin implements apis.EqualPlugin.
var _ apis.EqualPlugin = sequencePlugin{}

// TryEqual handles pairs where at least one side is a Sequence.
func (sequencePlugin) TryEqual(a, b any, rec apis.Equaler, cfg apis.Config) (bool, string, bool) {
	sa, aok := a.(Sequence)
	sb, bok := b.(Sequence)
	if !aok && !bok {
		return false, "", false
	}
	if aok != bok {
		return false, ": sequence compared against non-sequence", true
	}
	if sa.Len() != sb.Len() {
		return false, fmt.Sprintf(": length mismatch, x: %d, y: %d", sa.Len(), sb.Len()), true
	}
	for i := 0; i < sa.Len(); i++ {
		eq, msg := rec.Explain(sa.At(i), sb.At(i), cfg)
		if !eq {
			return false, fmt.Sprintf("[%d]%s", i, msg), true
		}
	}
	return true, "", true
}

// NewTablePlugin creates an apis.EqualPlugin that compares Table values by
// column set, then cell-wise.
func NewTablePlugin() apis.EqualPlugin {
	return tablePlugin{}
}

type tablePlugin struct{}

// Ensure tablePlugin implements apis.EqualPlugin.
var _ apis.EqualPlugin = tablePlugin{}

// TryEqual handles pairs where at least one side is a Table.
func (tablePlugin) TryEqual(a, b any, rec apis.Equaler, cfg apis.Config) (bool, string, bool) {
	ta, aok := a.(Table)
	tb, bok := b.(Table)
	if !aok && !bok {
		return false, "", false
	}
	if aok != bok {
		return false, ": table compared against non-table", true
	}
	ca, cb := ta.Columns(), tb.Columns()
	if eq, msg := rec.Explain(ca, cb, cfg); !eq {
		return false, ".columns" + msg, true
	}
	if ta.Len() != tb.Len() {
		return false, fmt.Sprintf(".rows: length mismatch, x: %d, y: %d", ta.Len(), tb.Len()), true
	}
	for r := 0; r < ta.Len(); r++ {
		for _, col := range ca {
			eq, msg := rec.Explain(ta.Cell(r, col), tb.Cell(r, col), cfg)
			if !eq {
				return false, fmt.Sprintf("[%d][%q]%s", r, col, msg), true
			}
		}
	}
	return true, "", true
}

// NewObjectPlugin creates an apis.EqualPlugin that compares parametric
// objects by class identity, then by shallow parameter mapping.
func NewObjectPlugin() apis.EqualPlugin {
	return objectPlugin{}
}

type objectPlugin struct{}

// Ensure objectPlugin implements apis.EqualPlugin.
var _ apis.EqualPlugin = objectPlugin{}

// TryEqual handles pairs where at least one side is an apis.Object.
func (objectPlugin) TryEqual(a, b any, rec apis.Equaler, cfg apis.Config) (bool, string, bool) {
	oa, aok := asObject(a)
	ob, bok := asObject(b)
	if !aok && !bok {
		return false, "", false
	}
	if aok != bok {
		return false, ": object compared against non-object", true
	}
	if oa == nil || ob == nil {
		if oa == ob {
			return true, "", true
		}
		return false, fmt.Sprintf(": nil mismatch, x: %v, y: %v", oa, ob), true
	}
	if oa.Class() != ob.Class() {
		return false, fmt.Sprintf(": class mismatch, x: %s, y: %s",
			oa.Class().FullPath(), ob.Class().FullPath()), true
	}
	pa, err := oa.Params(false)
	if err != nil {
		return false, fmt.Sprintf(": x params: %v", err), true
	}
	pb, err := ob.Params(false)
	if err != nil {
		return false, fmt.Sprintf(": y params: %v", err), true
	}
	eq, msg := rec.Explain(pa, pb, cfg)
	return eq, msg, true
}

// asObject reports whether v is an apis.Object, mapping typed-nil pointers
// to a nil object so that they never reach Params calls.
func asObject(v any) (apis.Object, bool) {
	o, ok := v.(apis.Object)
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, true
	}
	return o, true
}
