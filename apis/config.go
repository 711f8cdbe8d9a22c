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

// Recognized per-instance config keys. base.Base.SetConfig rejects
// everything outside this set.
const (
	// ConfigKeyDisplay selects the textual rendering mode ("text" or "tree").
	ConfigKeyDisplay = "display"
	// ConfigKeyPrintChangedOnly controls whether rendering shows only
	// parameters changed from their defaults.
	ConfigKeyPrintChangedOnly = "print_changed_only"
	// ConfigKeyCloneConfig controls whether Clone propagates instance
	// config overrides to the clone.
	ConfigKeyCloneConfig = "clone_config"
)

// Config carries read-only process-wide defaults that influence parameter
// walks, cloning, equality, and display. It is passed by value and should be
// treated as immutable by implementations. Individual instances may overlay
// the display and cloning knobs via their per-instance config store.
type Config struct {
	// Display selects the textual rendering mode of objects:
	// "text" for a single-line form, "tree" for an indented multi-line form
	// that expands component objects.
	Display string

	// PrintChangedOnly controls whether textual rendering shows only
	// parameters that differ from their declared defaults.
	PrintChangedOnly bool

	// CloneConfig controls whether Clone propagates per-instance config
	// overrides to the clone. Individual instances may opt out via the
	// "clone_config" config key.
	CloneConfig bool

	// MaxDepth limits recursion depth of deep parameter walks and deep
	// equality. Acts as a safety guard against pathological or cyclic
	// object graphs.
	MaxDepth int
}
