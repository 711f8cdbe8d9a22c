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
	"testing"

	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/config"
)

func TestConfig_GlobalDefaultsVisible(t *testing.T) {
	w := newTWidget()
	cfg := w.Config()
	if cfg[apis.ConfigKeyDisplay] != config.DefaultDisplay {
		t.Fatalf("display = %v", cfg[apis.ConfigKeyDisplay])
	}
	if cfg[apis.ConfigKeyPrintChangedOnly] != config.DefaultPrintChangedOnly {
		t.Fatalf("print_changed_only = %v", cfg[apis.ConfigKeyPrintChangedOnly])
	}
	if cfg[apis.ConfigKeyCloneConfig] != config.DefaultCloneConfig {
		t.Fatalf("clone_config = %v", cfg[apis.ConfigKeyCloneConfig])
	}
}

func TestSetConfig_OverlaysAndIsolated(t *testing.T) {
	w := newTWidget()
	if err := w.SetConfig(map[string]any{apis.ConfigKeyDisplay: config.DisplayTree}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if w.Config()[apis.ConfigKeyDisplay] != config.DisplayTree {
		t.Fatalf("override not visible")
	}
	if got := w.LocalConfig(); len(got) != 1 || got[apis.ConfigKeyDisplay] != config.DisplayTree {
		t.Fatalf("LocalConfig = %v", got)
	}

	// Sibling instances keep the global default.
	if newTWidget().Config()[apis.ConfigKeyDisplay] != config.DefaultDisplay {
		t.Fatalf("override leaked across instances")
	}
}

func TestSetConfig_Validation(t *testing.T) {
	w := newTWidget()
	cases := []struct {
		name string
		kv   map[string]any
		want error
	}{
		{"unknown key", map[string]any{"verbosity": 3}, ErrUnknownConfigKey},
		{"bad display", map[string]any{apis.ConfigKeyDisplay: "fancy"}, ErrInvalidConfigValue},
		{"display wrong type", map[string]any{apis.ConfigKeyDisplay: 1}, ErrInvalidConfigValue},
		{"bool wrong type", map[string]any{apis.ConfigKeyPrintChangedOnly: "yes"}, ErrInvalidConfigValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := w.SetConfig(tc.kv); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
	// Nothing was applied.
	if len(w.LocalConfig()) != 0 {
		t.Fatalf("invalid entries were applied: %v", w.LocalConfig())
	}
}

func TestSetConfig_AllOrNothing(t *testing.T) {
	w := newTWidget()
	err := w.SetConfig(map[string]any{
		apis.ConfigKeyDisplay: config.DisplayTree,
		"bogus":               1,
	})
	if !errors.Is(err, ErrUnknownConfigKey) {
		t.Fatalf("err = %v", err)
	}
	if len(w.LocalConfig()) != 0 {
		t.Fatalf("partial application on invalid batch: %v", w.LocalConfig())
	}
}

func TestConfig_NotPartOfParamsOrEquality(t *testing.T) {
	a := newTWidget()
	b := newTWidget()
	if err := a.SetConfig(map[string]any{apis.ConfigKeyDisplay: config.DisplayTree}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	p, err := a.Params(false)
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if _, ok := p[apis.ConfigKeyDisplay]; ok {
		t.Fatalf("config leaked into params")
	}
	if !a.Equals(b) {
		t.Fatalf("config overrides must not affect equality")
	}
}

func TestClone_PropagatesConfig(t *testing.T) {
	w := newTWidget()
	if err := w.SetConfig(map[string]any{apis.ConfigKeyDisplay: config.DisplayTree}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	c, err := w.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	got := c.(*tWidget).LocalConfig()
	if got[apis.ConfigKeyDisplay] != config.DisplayTree {
		t.Fatalf("clone config = %v", got)
	}

	// With clone_config off on the instance, overrides stay behind.
	w2 := newTWidget()
	if err := w2.SetConfig(map[string]any{
		apis.ConfigKeyDisplay:     config.DisplayTree,
		apis.ConfigKeyCloneConfig: false,
	}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	c2, err := w2.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if len(c2.(*tWidget).LocalConfig()) != 0 {
		t.Fatalf("clone_config=false ignored: %v", c2.(*tWidget).LocalConfig())
	}
}
