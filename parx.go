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

package parx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/builder"
	"dirpx.dev/parx/clone"
	"dirpx.dev/parx/config"
)

// init initializes the global parx state.
func init() {
	// Initialize state with default cfg, eq, and cln.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.eq = b.BuildEqualer(s.cfg, nil, nil)
	s.cln = b.BuildCloner(s.cfg, s.eq, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilEqualer is returned when a builder returns a nil equaler.
	ErrNilEqualer = errors.New("parx: builder returned nil equaler")
	// ErrNilCloner is returned when a builder returns a nil cloner.
	ErrNilCloner = errors.New("parx: builder returned nil cloner")
)

// Clone produces a new, independent instance with parameter-equal state to x
// using the global cloner chain. The mandatory round-trip postcondition is
// checked with the global equaler.
// This is a convenience wrapper around the global state.
func Clone(x apis.Object) (apis.Object, error) {
	s := st.Load()
	return clone.Object(x, s.cln, s.eq, s.cfg)
}

// CloneValue clones an arbitrary parameter value through the global cloner
// chain. Values no plugin handles are atomic and returned as-is.
// This is a convenience wrapper around the global state.
func CloneValue(v any) (any, error) {
	s := st.Load()
	return s.cln.Clone(v, s.cfg)
}

// DeepEqual reports structural deep equality of a and b using the global
// equaler chain.
// This is a convenience wrapper around the global state.
func DeepEqual(a, b any) bool {
	s := st.Load()
	return s.eq.Equal(a, b, s.cfg)
}

// Explain is like DeepEqual but also returns a diagnostic reason locating
// the first difference. The reason is empty when the values are equal.
// This is a convenience wrapper around the global state.
func Explain(a, b any) (bool, string) {
	s := st.Load()
	return s.eq.Explain(a, b, s.cfg)
}

// SetAll explicitly sets all global parx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, eq apis.Equaler, cln apis.Cloner, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Equaler
	neq := eq
	npeq := false
	if neq == nil {
		neq = nbld.BuildEqualer(ncfg, old.eq, next)
	} else {
		npeq = true
	}

	// Cloner
	ncln := cln
	npcln := false
	if ncln == nil {
		ncln = nbld.BuildCloner(ncfg, neq, old.cln, next)
	} else {
		npcln = true
	}

	// Ensure non-nil eq and cln.
	if neq == nil {
		panic(ErrNilEqualer)
	}
	if ncln == nil {
		panic(ErrNilCloner)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			eq:   neq,
			cln:  ncln,
			bld:  nbld,
			peq:  npeq,
			pcln: npcln,
		},
	)
}

// Config returns the global parx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global parx configuration to cfg.
// It rebuilds the global eq and cln using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new eq and cln based on the new cfg and old state.
	neq := old.eq
	if !old.peq {
		neq = b.BuildEqualer(cfg, old.eq, old.ext)
	}
	ncln := old.cln
	if !old.pcln {
		ncln = b.BuildCloner(cfg, neq, old.cln, old.ext)
	}

	// Ensure non-nil eq and cln.
	if neq == nil {
		panic(ErrNilEqualer)
	}
	if ncln == nil {
		panic(ErrNilCloner)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			eq:   neq,
			cln:  ncln,
			bld:  b,
			peq:  old.peq,
			pcln: old.pcln,
		},
	)
}

// Equaler returns the global parx eq.
func Equaler() apis.Equaler {
	return st.Load().eq
}

// SetEqualer sets the global parx eq to eq.
// It uses the global parx configuration to rebuild the global cln.
// This is a convenience wrapper around the global state.
func SetEqualer(eq apis.Equaler) {
	if eq == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new cln based on the old cfg and new eq.
	ncln := old.cln
	if !old.pcln {
		ncln = b.BuildCloner(old.cfg, eq, old.cln, old.ext)
	}

	// Ensure non-nil cln.
	if ncln == nil {
		panic(ErrNilCloner)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			eq:   eq,
			cln:  ncln,
			bld:  b,
			peq:  true,
			pcln: old.pcln,
		},
	)
}

// Cloner returns the global parx cln.
func Cloner() apis.Cloner {
	return st.Load().cln
}

// SetCloner sets the global parx cln to cln.
// This is a convenience wrapper around the global state.
func SetCloner(cln apis.Cloner) {
	if cln == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			eq:   old.eq,
			cln:  cln,
			bld:  old.bld,
			peq:  old.peq,
			pcln: true,
		},
	)
}

// Builder returns the global parx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global parx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new eq and cln based on the new bld and old state.
	neq := old.eq
	if !old.peq {
		neq = b.BuildEqualer(old.cfg, old.eq, old.ext)
	}
	ncln := old.cln
	if !old.pcln {
		ncln = b.BuildCloner(old.cfg, neq, old.cln, old.ext)
	}

	// Ensure non-nil eq and cln.
	if neq == nil {
		panic(ErrNilEqualer)
	}
	if ncln == nil {
		panic(ErrNilCloner)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			eq:   neq,
			cln:  ncln,
			bld:  b,
			peq:  old.peq,
			pcln: old.pcln,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new eq and cln based on the new ext and old state.
	neq := old.eq
	if !old.peq {
		neq = b.BuildEqualer(old.cfg, old.eq, ext)
	}
	ncln := old.cln
	if !old.pcln {
		ncln = b.BuildCloner(old.cfg, neq, old.cln, ext)
	}

	// Ensure non-nil eq and cln.
	if neq == nil {
		panic(ErrNilEqualer)
	}
	if ncln == nil {
		panic(ErrNilCloner)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			eq:   neq,
			cln:  ncln,
			bld:  b,
			peq:  old.peq,
			pcln: old.pcln,
		},
	)
}

// ExtAs returns the global parx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsEqualerPinned returns whether the global parx eq is pinned (immutable).
func IsEqualerPinned() bool {
	return st.Load().peq
}

// PinEqualer makes the global parx eq immutable.
func PinEqualer() {
	setPins(func(s *state) { s.peq = true })
}

// UnpinEqualer makes the global parx eq mutable again.
func UnpinEqualer() {
	setPins(func(s *state) { s.peq = false })
}

// IsClonerPinned returns whether the global parx cln is pinned (immutable).
func IsClonerPinned() bool {
	return st.Load().pcln
}

// PinCloner makes the global parx cln immutable.
func PinCloner() {
	setPins(func(s *state) { s.pcln = true })
}

// UnpinCloner makes the global parx cln mutable again.
func UnpinCloner() {
	setPins(func(s *state) { s.pcln = false })
}

// setPins publishes a copy of the current snapshot with pin flags adjusted.
func setPins(mut func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	ns := &state{
		cfg:  old.cfg,
		ext:  old.ext,
		eq:   old.eq,
		cln:  old.cln,
		bld:  old.bld,
		peq:  old.peq,
		pcln: old.pcln,
	}
	mut(ns)

	// Store the new state atomically.
	st.Store(ns)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global parx state.
var st atomic.Pointer[state]

// state is the global parx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global parx configuration.
	cfg apis.Config
	// ext is the global parx extension configuration.
	ext any
	// eq is the global parx equaler.
	eq apis.Equaler
	// cln is the global parx cloner.
	cln apis.Cloner
	// bld is the global parx builder.
	bld apis.Builder
	// peq indicates whether the eq is pinned (immutable).
	peq bool
	// pcln indicates whether the cln is pinned (immutable).
	pcln bool
}
