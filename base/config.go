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

	"dirpx.dev/parx"
	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/config"
)

var (
	// ErrUnknownConfigKey is returned by SetConfig for a key outside the
	// recognized config vocabulary.
	ErrUnknownConfigKey = errors.New("parx(base): unknown config key")
	// ErrInvalidConfigValue is returned by SetConfig for a recognized key
	// with a value of the wrong type or outside its domain.
	ErrInvalidConfigValue = errors.New("parx(base): invalid config value")
)

// Config returns the effective configuration of the instance: process-wide
// defaults overlaid with the instance-level overrides set via SetConfig.
// The result is a copy.
func (b *Base) Config() map[string]any {
	g := parx.Config()
	out := map[string]any{
		apis.ConfigKeyDisplay:          g.Display,
		apis.ConfigKeyPrintChangedOnly: g.PrintChangedOnly,
		apis.ConfigKeyCloneConfig:      g.CloneConfig,
	}
	if b == nil {
		return out
	}
	for k, v := range b.dynConfig {
		out[k] = v
	}
	return out
}

// LocalConfig returns only the instance-level overrides, without the
// process-wide defaults. The result is a copy; it is empty, not nil, when
// nothing was overridden.
func (b *Base) LocalConfig() map[string]any {
	out := make(map[string]any, len(b.dynConfig))
	if b == nil {
		return out
	}
	for k, v := range b.dynConfig {
		out[k] = v
	}
	return out
}

// SetConfig installs instance-level configuration overrides. Keys and value
// domains are validated strictly; on the first invalid entry nothing in kv
// is applied. Config keys are not parameters: they never appear in Params
// output and do not affect Equals.
func (b *Base) SetConfig(kv map[string]any) error {
	if len(kv) == 0 {
		return nil
	}
	for k, v := range kv {
		if err := validateConfig(k, v); err != nil {
			return err
		}
	}
	if b.dynConfig == nil {
		b.dynConfig = make(map[string]any, len(kv))
	}
	for k, v := range kv {
		b.dynConfig[k] = v
	}
	return nil
}

// validateConfig checks a single config entry against the key vocabulary.
func validateConfig(key string, value any) error {
	switch key {
	case apis.ConfigKeyDisplay:
		s, ok := value.(string)
		if !ok || (s != config.DisplayText && s != config.DisplayTree) {
			return fmt.Errorf("%w: %q wants %q or %q, got %#v", ErrInvalidConfigValue,
				key, config.DisplayText, config.DisplayTree, value)
		}
	case apis.ConfigKeyPrintChangedOnly, apis.ConfigKeyCloneConfig:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %q wants bool, got %#v", ErrInvalidConfigValue, key, value)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
	}
	return nil
}
