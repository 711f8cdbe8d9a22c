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

package conformance

import (
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/parx"
	"dirpx.dev/parx/apis"
)

// DefaultChecks returns the standard contract battery. Tag resolution is a
// class-level check so it still produces a verdict for classes that cannot
// be instantiated; the rest run per instance.
func DefaultChecks() []Check {
	return []Check{
		{Name: "tag-resolution", RunClass: checkClassTags},
		{Name: "params-round-trip", Run: checkParamsRoundTrip},
		{Name: "clone-semantics", Run: checkClone},
		{Name: "instance-tags", Run: checkInstanceTags},
		{Name: "equality-reflexive", Run: checkEqualityReflexive},
		{Name: "display-renders", Run: checkDisplay},
	}
}

// checkParamsRoundTrip verifies that feeding an object its own parameters
// back is an identity operation: same key set, deep-equal values.
func checkParamsRoundTrip(obj apis.Object) (Status, string) {
	before, err := obj.Params(false)
	if err != nil {
		return Fail, fmt.Sprintf("reading params: %v", err)
	}
	if err := obj.SetParams(before); err != nil {
		return Fail, fmt.Sprintf("setting own params back: %v", err)
	}
	after, err := obj.Params(false)
	if err != nil {
		return Fail, fmt.Sprintf("re-reading params: %v", err)
	}
	if diff := cmp.Diff(paramKeys(before), paramKeys(after)); diff != "" {
		return Fail, "key set changed across round-trip (-before +after):\n" + diff
	}
	if eq, msg := parx.Explain(before, after); !eq {
		return Fail, "values changed across round-trip: " + msg
	}
	return Pass, ""
}

// checkClone verifies the clone contract: a distinct instance of the same
// class whose parameters deep-equal the original's.
func checkClone(obj apis.Object) (Status, string) {
	c, err := parx.Clone(obj)
	if err != nil {
		return Fail, fmt.Sprintf("clone: %v", err)
	}
	if c == obj {
		return Fail, "clone returned the original instance"
	}
	if c.Class() != obj.Class() {
		return Fail, fmt.Sprintf("clone class mismatch: %s vs %s",
			c.Class().FullPath(), obj.Class().FullPath())
	}
	po, err := obj.Params(false)
	if err != nil {
		return Fail, fmt.Sprintf("reading original params: %v", err)
	}
	pc, err := c.Params(false)
	if err != nil {
		return Fail, fmt.Sprintf("reading clone params: %v", err)
	}
	if eq, msg := parx.Explain(po, pc); !eq {
		return Fail, "clone params differ: " + msg
	}
	return Pass, ""
}

// checkClassTags verifies tag resolution on the descriptor alone: the
// aggregate ResolvedTags mapping and per-name ResolvedTag lookups agree, and
// every tag declared anywhere in the ancestor chain is visible in the
// resolved view.
func checkClassTags(cls *apis.Class) (Status, string) {
	tags := cls.ResolvedTags()
	for name, want := range tags {
		got, ok := cls.ResolvedTag(name)
		if !ok {
			return Fail, fmt.Sprintf("ResolvedTag(%q) missing for a tag present in ResolvedTags()", name)
		}
		if !parx.DeepEqual(got, want) {
			return Fail, fmt.Sprintf("ResolvedTag(%q) = %v, ResolvedTags()[%q] = %v", name, got, name, want)
		}
	}
	declared := map[string]any{}
	for k, v := range cls.Tags {
		declared[k] = v
	}
	for _, anc := range cls.Ancestors() {
		for k, v := range anc.Tags {
			declared[k] = v
		}
	}
	if diff := cmp.Diff(missingKeys(declared, tags), []string(nil)); diff != "" {
		return Fail, "declared tags missing from resolved view:\n" + diff
	}
	return Pass, ""
}

// checkInstanceTags verifies tag resolution consistency on a live instance:
// the aggregate Tags mapping and per-name Tag lookups agree, and every
// class-level tag is visible through the instance.
func checkInstanceTags(obj apis.Object) (Status, string) {
	tags := obj.Tags()
	for name, want := range tags {
		got, err := obj.Tag(name)
		if err != nil {
			return Fail, fmt.Sprintf("Tag(%q) errored for a tag present in Tags(): %v", name, err)
		}
		if !parx.DeepEqual(got, want) {
			return Fail, fmt.Sprintf("Tag(%q) = %v, Tags()[%q] = %v", name, got, name, want)
		}
	}
	classTags := obj.Class().ResolvedTags()
	if diff := cmp.Diff(missingKeys(classTags, tags), []string(nil)); diff != "" {
		return Fail, "class-level tags missing from instance Tags():\n" + diff
	}
	return Pass, ""
}

// checkEqualityReflexive verifies the comparator is reflexive over the
// object and its parameters, NaN values included.
func checkEqualityReflexive(obj apis.Object) (Status, string) {
	if !parx.DeepEqual(obj, obj) {
		return Fail, "object does not equal itself"
	}
	p, err := obj.Params(false)
	if err != nil {
		return Fail, fmt.Sprintf("reading params: %v", err)
	}
	if eq, msg := parx.Explain(p, p); !eq {
		return Fail, "params do not equal themselves: " + msg
	}
	return Pass, ""
}

// checkDisplay verifies rendering never panics and produces output.
// Panics escape to the runner's isolation and report as Error.
func checkDisplay(obj apis.Object) (Status, string) {
	s := fmt.Sprintf("%v", obj)
	if s == "" {
		return Fail, "empty rendering"
	}
	return Pass, ""
}

// paramKeys returns the sorted key set of a parameter mapping.
func paramKeys(p apis.Params) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// missingKeys returns the sorted keys of want absent from got.
func missingKeys(want, got map[string]any) []string {
	var out []string
	for k := range want {
		if _, ok := got[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
