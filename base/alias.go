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
	"log/slog"
	"sync"
)

// ErrAliasesFrozen is returned by RegisterTagAliases after the alias table
// has been consulted for the first time.
var ErrAliasesFrozen = errors.New("parx(base): tag alias table is frozen after first use")

var (
	// aliasMu guards the alias table and its freeze flag.
	aliasMu sync.Mutex
	// tagAliases maps deprecated tag names to their replacements.
	tagAliases = map[string]string{}
	// aliasFrozen flips on first resolution; the table is immutable after.
	aliasFrozen bool
)

// RegisterTagAliases installs deprecated-to-current tag name aliases. The
// table is meant to be loaded once during process initialization (init
// functions); it freezes on first tag resolution and later registration
// fails with ErrAliasesFrozen. Aliases are single-level: the replacement
// must be a current name, not another alias.
func RegisterTagAliases(aliases map[string]string) error {
	aliasMu.Lock()
	defer aliasMu.Unlock()
	if aliasFrozen {
		return ErrAliasesFrozen
	}
	for old, current := range aliases {
		tagAliases[old] = current
	}
	return nil
}

// canonicalTag resolves a possibly deprecated tag name to its current name,
// warning on deprecated use. The first call freezes the alias table.
func canonicalTag(name string) string {
	aliasMu.Lock()
	aliasFrozen = true
	current, ok := tagAliases[name]
	aliasMu.Unlock()
	if !ok {
		return name
	}
	slog.Warn("parx: deprecated tag name", "deprecated", name, "use", current)
	return current
}

// resetTagAliasesForTest restores the pristine alias table. Test use only.
func resetTagAliasesForTest() {
	aliasMu.Lock()
	defer aliasMu.Unlock()
	tagAliases = map[string]string{}
	aliasFrozen = false
}
