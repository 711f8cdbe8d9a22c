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

import (
	"reflect"
	"testing"
)

// Chain fixture: root <- mid <- leaf, with overriding tag declarations.
var (
	root = &Class{Path: "t", Name: "Root",
		Tags: map[string]any{"a": 1, "b": 1}}
	mid = &Class{Path: "t", Name: "Mid", Parent: root,
		Tags: map[string]any{"b": 2, "c": 2}}
	leaf = &Class{Path: "t", Name: "Leaf", Parent: mid,
		Tags: map[string]any{"c": 3}}
	other = &Class{Path: "t", Name: "Other"}
)

func TestFullPath(t *testing.T) {
	if got := leaf.FullPath(); got != "t.Leaf" {
		t.Fatalf("FullPath = %q", got)
	}
	if got := (&Class{Name: "Bare"}).FullPath(); got != "Bare" {
		t.Fatalf("FullPath = %q", got)
	}
	var nilClass *Class
	if got := nilClass.FullPath(); got != "" {
		t.Fatalf("nil FullPath = %q", got)
	}
}

func TestAncestors(t *testing.T) {
	got := leaf.Ancestors()
	want := []*Class{mid, root}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Ancestors = %v, want %v", got, want)
	}
	if root.Ancestors() != nil {
		t.Fatalf("root should have no ancestors")
	}
}

func TestIs(t *testing.T) {
	cases := []struct {
		name string
		c    *Class
		base *Class
		want bool
	}{
		{"self", leaf, leaf, true},
		{"direct parent", leaf, mid, true},
		{"transitive", leaf, root, true},
		{"unrelated", leaf, other, false},
		{"inverted", root, leaf, false},
		{"nil base", leaf, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Is(tc.base); got != tc.want {
				t.Fatalf("Is = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolvedTags_ClosestAncestorWins(t *testing.T) {
	got := leaf.ResolvedTags()
	want := map[string]any{"a": 1, "b": 2, "c": 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ResolvedTags = %v, want %v", got, want)
	}

	// The result is a copy; mutation must not leak into declarations.
	got["a"] = 99
	if root.Tags["a"] != 1 {
		t.Fatalf("declaration mutated through resolved copy")
	}
}

func TestResolvedTag(t *testing.T) {
	if v, ok := leaf.ResolvedTag("b"); !ok || v != 2 {
		t.Fatalf("ResolvedTag(b) = %v, %v", v, ok)
	}
	if v, ok := leaf.ResolvedTag("c"); !ok || v != 3 {
		t.Fatalf("ResolvedTag(c) = %v, %v", v, ok)
	}
	if _, ok := leaf.ResolvedTag("missing"); ok {
		t.Fatalf("undeclared tag resolved")
	}
}
