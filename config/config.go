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

package config

import (
	"dirpx.dev/parx/apis"
)

const (
	// DisplayText renders objects on a single line.
	DisplayText = "text"
	// DisplayTree renders objects as an indented multi-line tree,
	// expanding component objects.
	DisplayTree = "tree"

	// DefaultDisplay represents the default for Display.
	DefaultDisplay = DisplayText
	// DefaultPrintChangedOnly represents the default for PrintChangedOnly.
	// When true, rendering shows only parameters changed from their defaults.
	DefaultPrintChangedOnly = true
	// DefaultCloneConfig represents the default for CloneConfig.
	// When true, per-instance config overrides are propagated into clones.
	DefaultCloneConfig = true
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 64 should be sufficient for all practical nesting.
	DefaultMaxDepth = 64
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth and Display are valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Display != DisplayText && cfg.Display != DisplayTree {
		cfg.Display = DefaultDisplay
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Display:          DefaultDisplay,
		PrintChangedOnly: DefaultPrintChangedOnly,
		CloneConfig:      DefaultCloneConfig,
		MaxDepth:         DefaultMaxDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDisplay sets the Display option.
// Unknown modes reset to the default.
func WithDisplay(mode string) Option {
	return func(c *apis.Config) {
		c.Display = mode
	}
}

// WithPrintChangedOnly sets the PrintChangedOnly option.
func WithPrintChangedOnly(changedOnly bool) Option {
	return func(c *apis.Config) {
		c.PrintChangedOnly = changedOnly
	}
}

// WithCloneConfig sets the CloneConfig option.
func WithCloneConfig(cloneConfig bool) Option {
	return func(c *apis.Config) {
		c.CloneConfig = cloneConfig
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}
