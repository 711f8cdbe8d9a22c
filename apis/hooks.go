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

// Namer is an optional hook for objects that want to override the display
// name used in textual rendering. Without it, the Class name is used.
type Namer interface {
	// EntityName returns the display name of the object.
	EntityName() string
}

// Describer is an optional hook for objects that carry a human-readable
// description, surfaced by package manifests and documentation tooling.
type Describer interface {
	// Describe returns a one-line description of the object.
	Describe() string
}

// ConfigCarrier is the optional per-instance config surface. base.Base
// implements it; the cloner consults it to propagate instance config
// overrides into clones per the "clone_config" setting.
type ConfigCarrier interface {
	// LocalConfig returns only the instance-level config overrides,
	// without global defaults merged in.
	LocalConfig() map[string]any

	// SetConfig creates or replaces instance-level config overrides.
	// Unrecognized keys are rejected.
	SetConfig(kv map[string]any) error
}
