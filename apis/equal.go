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

// Equaler decides structural deep equality of two values. An Equaler is
// typically an ordered chain of EqualPlugins followed by a generic
// structural comparator.
//
// Divergence from IEEE semantics: two NaN values at the same position are
// considered equal, since the intent is reproducibility checking rather
// than numeric comparison.
type Equaler interface {
	// Equal reports whether a and b are structurally equal under cfg.
	Equal(a, b any, cfg Config) bool

	// Explain is like Equal but also returns a diagnostic reason locating
	// the first difference (e.g. `["key"][3].size`). The reason is empty
	// when the values are equal.
	Explain(a, b any, cfg Config) (bool, string)
}

// EqualPlugin is a pluggable comparison step for value shapes that need
// custom handling (numeric array-likes, tables, parametric objects). Plugins
// are tried in order before any generic length/iteration based comparison.
type EqualPlugin interface {
	// TryEqual attempts to compare a and b. recurse is the full chain, for
	// element-wise descent. It returns handled=false to fall through; when
	// handled, eq is the verdict and msg the diagnostic for a difference.
	TryEqual(a, b any, recurse Equaler, cfg Config) (eq bool, msg string, handled bool)
}
