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

	"dirpx.dev/parx/apis"
)

// ErrTagNotFound is returned by Tag for a name declared nowhere in the
// ancestor chain and not overridden on the instance.
var ErrTagNotFound = errors.New("parx(base): tag not found")

// Tags returns the complete resolved tag mapping: class-level declarations
// merged along the ancestor chain (closest-ancestor-wins), then instance
// overrides on top. The result is a copy; mutating it does not affect the
// instance.
func (b *Base) Tags() map[string]any {
	out := b.Class().ResolvedTags()
	if b == nil {
		return out
	}
	for k, v := range b.dynTags {
		out[k] = v
	}
	return out
}

// Tag returns the resolved value of a single tag. Instance overrides win
// over class declarations; class declarations resolve most-derived first.
// Deprecated tag names resolve transparently to their replacement, with a
// warning.
func (b *Base) Tag(name string) (any, error) {
	canonical := canonicalTag(name)
	if b != nil {
		if v, ok := b.dynTags[canonical]; ok {
			return v, nil
		}
	}
	if v, ok := b.Class().ResolvedTag(canonical); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q on %s", ErrTagNotFound, name, b.Class().FullPath())
}

// TagDefault is like Tag but returns def instead of an error for an
// undeclared tag.
func (b *Base) TagDefault(name string, def any) any {
	v, err := b.Tag(name)
	if err != nil {
		return def
	}
	return v
}

// SetTags creates or replaces instance-level tag overrides and returns the
// receiver to support chaining. Setting a deprecated name sets its
// replacement.
func (b *Base) SetTags(kv map[string]any) *Base {
	if len(kv) == 0 {
		return b
	}
	if b.dynTags == nil {
		b.dynTags = make(map[string]any, len(kv))
	}
	for k, v := range kv {
		b.dynTags[canonicalTag(k)] = v
	}
	return b
}

// CloneTagsFrom copies resolved tag values from src as instance-level
// overrides. With no names given, all of src's tags are copied; otherwise
// only the named ones, skipping names src does not declare. Returns the
// receiver to support chaining.
func (b *Base) CloneTagsFrom(src apis.Object, names ...string) *Base {
	if src == nil {
		return b
	}
	srcTags := src.Tags()
	if len(names) == 0 {
		return b.SetTags(srcTags)
	}
	picked := make(map[string]any, len(names))
	for _, n := range names {
		if v, ok := srcTags[canonicalTag(n)]; ok {
			picked[n] = v
		}
	}
	return b.SetTags(picked)
}
