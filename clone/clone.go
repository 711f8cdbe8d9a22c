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

// Package clone implements the cloning engine for parametric objects.
//
// A Cloner is an ordered chain of plugins, each declaring which value shapes
// it handles; the first match wins, recursion into container elements is
// depth-first, and values no plugin claims are atomic and copied by
// reference. Object reconstructs an apis.Object from its current parameters
// via the class factory and enforces the round-trip equality postcondition.
package clone

import (
	"errors"
	"fmt"

	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/config"
)

var (
	// ErrNilObject is returned when a nil object is passed to Object.
	ErrNilObject = errors.New("parx(clone): nil object provided")
	// ErrNoFactory indicates the object's class descriptor has no factory,
	// so the object cannot be reconstructed.
	ErrNoFactory = errors.New("parx(clone): class has no factory")
	// ErrCloneRoundTrip indicates the mandatory clone postcondition failed:
	// the reconstructed instance's parameters are not deep-equal to the
	// cloned inputs.
	ErrCloneRoundTrip = errors.New("parx(clone): clone round-trip equality violated")
	// ErrMaxDepth indicates the clone recursion guard tripped.
	ErrMaxDepth = errors.New("parx(clone): max clone depth exceeded")
)

// New constructs an apis.Cloner that tries the given plugins in order.
// Nil plugins are ignored. Values no plugin handles are returned unchanged
// (atomic, copied by reference).
func New(plugins ...apis.ClonePlugin) apis.Cloner {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.ClonePlugin, 0, len(plugins))
	for _, p := range plugins {
		if p != nil {
			out = append(out, p)
		}
	}
	return chain{plugins: out}
}

// Default returns a Cloner with the stock plugin chain, using eq for the
// round-trip postcondition on nested object clones.
func Default(eq apis.Equaler) apis.Cloner {
	return New(
		NewClonablePlugin(),
		NewObjectPlugin(eq),
		NewMapPlugin(),
		NewSlicePlugin(),
	)
}

// chain is an immutable, order-preserving cloner over a set of plugins.
type chain struct {
	plugins []apis.ClonePlugin
	depth   int
}

// Clone runs plugins in order until one handles the value. Unhandled values
// are atomic and returned as-is.
func (c chain) Clone(v any, cfg apis.Config) (any, error) {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	if c.depth > maxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrMaxDepth, maxDepth)
	}
	rec := chain{plugins: c.plugins, depth: c.depth + 1}
	for _, p := range c.plugins {
		out, handled, err := p.TryClone(v, rec, cfg)
		if err != nil {
			return nil, err
		}
		if handled {
			return out, nil
		}
	}
	return v, nil
}

// Object reconstructs an independent instance of x from its current
// parameter values.
//
// The algorithm reads the shallow parameter mapping, clones each value
// through c, constructs a fresh instance via the class factory, applies the
// cloned parameters, and then verifies the mandatory postcondition: the
// fresh instance's re-read parameters must be deep-equal to the cloned
// inputs under eq. Instance config overrides are propagated per the
// "clone_config" setting; dynamic tag overrides are not copied, matching
// post-init blueprint semantics.
func Object(x apis.Object, c apis.Cloner, eq apis.Equaler, cfg apis.Config) (apis.Object, error) {
	if x == nil {
		return nil, ErrNilObject
	}
	cls := x.Class()
	if cls == nil || cls.New == nil {
		return nil, fmt.Errorf("%w: %T", ErrNoFactory, x)
	}

	params, err := x.Params(false)
	if err != nil {
		return nil, fmt.Errorf("parx(clone): reading params of %s: %w", cls.FullPath(), err)
	}
	cloned := make(apis.Params, len(params))
	for name, v := range params {
		cv, err := c.Clone(v, cfg)
		if err != nil {
			return nil, fmt.Errorf("parx(clone): cloning param %q of %s: %w", name, cls.FullPath(), err)
		}
		cloned[name] = cv
	}

	y := cls.New()
	if y == nil {
		return nil, fmt.Errorf("%w: %s factory returned nil", ErrNoFactory, cls.FullPath())
	}
	if err := y.SetParams(cloned); err != nil {
		return nil, fmt.Errorf("parx(clone): reconstructing %s: %w", cls.FullPath(), err)
	}

	got, err := y.Params(false)
	if err != nil {
		return nil, fmt.Errorf("parx(clone): re-reading params of %s: %w", cls.FullPath(), err)
	}
	if eq != nil {
		if ok, msg := eq.Explain(got, cloned, cfg); !ok {
			return nil, fmt.Errorf("%w: %s%s", ErrCloneRoundTrip, cls.FullPath(), msg)
		}
	}

	propagateConfig(x, y, cfg)
	return y, nil
}

// propagateConfig copies instance config overrides into the clone when the
// effective "clone_config" setting allows it.
func propagateConfig(x, y apis.Object, cfg apis.Config) {
	src, ok := x.(apis.ConfigCarrier)
	if !ok {
		return
	}
	dst, ok := y.(apis.ConfigCarrier)
	if !ok {
		return
	}
	local := src.LocalConfig()
	propagate := cfg.CloneConfig
	if v, found := local[apis.ConfigKeyCloneConfig]; found {
		if b, isBool := v.(bool); isBool {
			propagate = b
		}
	}
	if propagate && len(local) > 0 {
		// Keys come from a validated store, so this cannot fail on keys;
		// a failure would indicate a carrier mismatch and is ignored.
		_ = dst.SetConfig(local)
	}
}
