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

package lookup

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"sync"

	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/equal"
)

// Record is one discovered class: its owning module path, its name, the
// descriptor, and its fully resolved class-level tags.
type Record struct {
	Module string
	Name   string
	Class  *apis.Class
	Tags   map[string]any
}

// LoadFailure describes a module whose loader returned an error or panicked.
type LoadFailure struct {
	Module string
	Err    error
}

// MatchMode selects how multiple base descriptors combine in WithBase.
type MatchMode int

const (
	// MatchAny keeps classes descending from at least one base.
	MatchAny MatchMode = iota
	// MatchAll keeps classes descending from every base.
	MatchAll
)

// tagFilter is one tag criterion. want is a literal, a []any of acceptable
// values, or a *regexp.Regexp over the value's string form.
type tagFilter struct {
	name string
	want any
}

type options struct {
	mode           MatchMode
	bases          []*apis.Class
	tagFilters     []tagFilter
	excludeNames   map[string]bool
	excludeModules map[string]bool
	quiet          bool
}

// Option configures AllObjects.
type Option func(*options)

// WithBase keeps only classes whose ancestor chain reaches the given
// descriptors, combined per mode.
func WithBase(mode MatchMode, bases ...*apis.Class) Option {
	return func(o *options) {
		o.mode = mode
		o.bases = append(o.bases, bases...)
	}
}

// WithTagFilter keeps only classes whose resolved tag matches want. want may
// be a literal value (deep equality), a []any of acceptable values
// (intersection semantics when the resolved value is itself a list), or a
// *regexp.Regexp matched against the value's string form. Multiple filters
// conjoin.
func WithTagFilter(name string, want any) Option {
	return func(o *options) {
		o.tagFilters = append(o.tagFilters, tagFilter{name: name, want: want})
	}
}

// WithExclude drops classes by name.
func WithExclude(names ...string) Option {
	return func(o *options) {
		if o.excludeNames == nil {
			o.excludeNames = make(map[string]bool, len(names))
		}
		for _, n := range names {
			o.excludeNames[n] = true
		}
	}
}

// WithExcludeModules drops whole modules by path before loading them.
func WithExcludeModules(paths ...string) Option {
	return func(o *options) {
		if o.excludeModules == nil {
			o.excludeModules = make(map[string]bool, len(paths))
		}
		for _, p := range paths {
			o.excludeModules[p] = true
		}
	}
}

// WithQuietLoad controls whether process stdout is suppressed while loaders
// run, for loaders that print banners on import. Suppression is on by
// default; pass false to let loader output through.
func WithQuietLoad(quiet bool) Option {
	return func(o *options) { o.quiet = quiet }
}

// AllObjects walks every registered module, runs each loader once for this
// walk, and returns the filtered catalogue sorted by full class path,
// together with the load failures encountered. Nothing is cached across
// calls, so a module that failed transiently is retried on the next walk. A
// failing module contributes nothing to the records but never aborts the
// walk; the error return is reserved for invalid filter arguments.
func AllObjects(opts ...Option) ([]Record, []LoadFailure, error) {
	o := options{quiet: true}
	for _, opt := range opts {
		opt(&o)
	}
	for _, tf := range o.tagFilters {
		if tf.name == "" {
			return nil, nil, fmt.Errorf("parx(lookup): empty tag filter name")
		}
	}

	var (
		records  []Record
		failures []LoadFailure
		seen     = map[*apis.Class]bool{}
	)
	for _, e := range snapshot() {
		if o.excludeModules[e.path] {
			continue
		}
		mod, err := loadModule(e, o.quiet)
		if err != nil {
			failures = append(failures, LoadFailure{Module: e.path, Err: err})
			slog.Warn("parx: module load failed", "module", e.path, "err", err)
			continue
		}
		for _, cls := range mod.classes {
			if o.excludeNames[cls.Name] {
				continue
			}
			if !matchBases(cls, o.mode, o.bases) {
				continue
			}
			tags := cls.ResolvedTags()
			if !matchTags(tags, o.tagFilters) {
				continue
			}
			// Dedup by descriptor identity so a class catalogued under
			// several module paths yields a single record.
			if seen[cls] {
				continue
			}
			seen[cls] = true
			records = append(records, Record{
				Module: e.path,
				Name:   cls.Name,
				Class:  cls,
				Tags:   tags,
			})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Class.FullPath() < records[j].Class.FullPath()
	})
	return records, failures, nil
}

// loadModule runs the entry's loader into a fresh catalogue, recovering
// panics into errors and optionally silencing stdout for its duration. The
// outcome lives only for the current walk.
func loadModule(e *entry, quiet bool) (*Module, error) {
	m := &Module{Path: e.path}
	if err := safeLoad(e.loader, m, quiet); err != nil {
		return nil, err
	}
	return m, nil
}

// stdoutMu serializes the process-wide stdout swap of quiet loads across
// concurrent walks.
var stdoutMu sync.Mutex

// safeLoad invokes the loader with panic recovery and optional stdout
// suppression.
func safeLoad(loader Loader, m *Module, quiet bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parx(lookup): loader panic: %v", r)
		}
	}()
	if quiet {
		stdoutMu.Lock()
		defer stdoutMu.Unlock()
		if null, openErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0); openErr == nil {
			orig := os.Stdout
			os.Stdout = null
			defer func() {
				os.Stdout = orig
				null.Close()
			}()
		}
	}
	return loader(m)
}

// matchBases applies the ancestry filter.
func matchBases(cls *apis.Class, mode MatchMode, bases []*apis.Class) bool {
	if len(bases) == 0 {
		return true
	}
	hits := 0
	for _, b := range bases {
		if cls.Is(b) {
			hits++
		}
	}
	if mode == MatchAll {
		return hits == len(bases)
	}
	return hits > 0
}

// matchTags applies every tag filter conjunctively. A class missing a
// filtered tag never matches.
func matchTags(tags map[string]any, filters []tagFilter) bool {
	for _, tf := range filters {
		got, ok := tags[tf.name]
		if !ok {
			return false
		}
		if !matchTagValue(got, tf.want) {
			return false
		}
	}
	return true
}

// matchTagValue compares one resolved tag value against one criterion.
func matchTagValue(got, want any) bool {
	switch w := want.(type) {
	case *regexp.Regexp:
		return w.MatchString(fmt.Sprintf("%v", got))
	case []any:
		// Intersection semantics: a list-valued tag matches if any of its
		// elements is acceptable; a scalar tag matches by membership.
		if gl, ok := got.([]any); ok {
			for _, gv := range gl {
				for _, wv := range w {
					if equal.Deep(gv, wv) {
						return true
					}
				}
			}
			return false
		}
		for _, wv := range w {
			if equal.Deep(got, wv) {
				return true
			}
		}
		return false
	default:
		return equal.Deep(got, want)
	}
}
