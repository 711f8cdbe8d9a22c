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

// Builder composes Equaler and Cloner chains from a Config.
// Implementations may reuse state from previous instances (prev*), or ignore them.
type Builder interface {
	// BuildEqualer constructs an Equaler for Config. ext is an optional
	// extension context; its meaning is implementation-defined.
	BuildEqualer(cfg Config, prev Equaler, ext any) Equaler

	// BuildCloner constructs a Cloner for Config, using eq for clone
	// round-trip postcondition checks. ext is an optional extension context.
	BuildCloner(cfg Config, eq Equaler, prev Cloner, ext any) Cloner
}
