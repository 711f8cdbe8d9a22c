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

package conformance

import (
	"fmt"
	"strings"
)

// Status is the outcome of one conformance check on one object.
type Status int

const (
	// Pass means the check's conditions all held.
	Pass Status = iota
	// Fail means a contract condition was violated.
	Fail
	// Skip means the check could not run for a legitimate reason, such as
	// a class with no constructible example.
	Skip
	// Error means the check itself blew up (panic or infrastructure
	// failure), distinct from a contract violation.
	Error
)

// String implements fmt.Stringer with stable tokens; unknown values render
// as a diagnostic form rather than panicking.
func (s Status) String() string {
	switch s {
	case Pass:
		return "Pass"
	case Fail:
		return "Fail"
	case Skip:
		return "Skip"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// ParseStatus converts a token into a Status, case-insensitively and
// ignoring surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass":
		return Pass, nil
	case "fail":
		return Fail, nil
	case "skip":
		return Skip, nil
	case "error":
		return Error, nil
	default:
		return Error, fmt.Errorf("parx(conformance): unknown status %q", s)
	}
}

// MustParseStatus is ParseStatus panicking on invalid input, for hard-coded
// tokens in tests and examples.
func MustParseStatus(s string) Status {
	st, err := ParseStatus(s)
	if err != nil {
		panic(err)
	}
	return st
}

// MarshalText implements encoding.TextMarshaler. Unknown values fail rather
// than serializing a diagnostic form.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Pass, Fail, Skip, Error:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("parx(conformance): cannot marshal unknown status %d", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure the target
// is left unchanged.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
