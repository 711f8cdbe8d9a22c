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
	"testing"

	"dirpx.dev/parx/apis"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Display != DisplayText {
		t.Fatalf("Display = %q, want %q", cfg.Display, DisplayText)
	}
	if !cfg.PrintChangedOnly {
		t.Fatalf("PrintChangedOnly should default to true")
	}
	if !cfg.CloneConfig {
		t.Fatalf("CloneConfig should default to true")
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", cfg.MaxDepth, DefaultMaxDepth)
	}
}

func TestNewConfig_Options(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		want apis.Config
	}{
		{
			"no options",
			nil,
			DefaultConfig(),
		},
		{
			"tree display",
			[]Option{WithDisplay(DisplayTree)},
			apis.Config{Display: DisplayTree, PrintChangedOnly: true, CloneConfig: true, MaxDepth: DefaultMaxDepth},
		},
		{
			"invalid display resets",
			[]Option{WithDisplay("fancy")},
			DefaultConfig(),
		},
		{
			"custom depth",
			[]Option{WithMaxDepth(3)},
			apis.Config{Display: DisplayText, PrintChangedOnly: true, CloneConfig: true, MaxDepth: 3},
		},
		{
			"non-positive depth resets",
			[]Option{WithMaxDepth(-1)},
			DefaultConfig(),
		},
		{
			"flags off",
			[]Option{WithPrintChangedOnly(false), WithCloneConfig(false)},
			apis.Config{Display: DisplayText, MaxDepth: DefaultMaxDepth},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewConfig(tc.opts...)
			if got != tc.want {
				t.Fatalf("NewConfig() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
