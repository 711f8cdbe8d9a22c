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
	"strings"
	"testing"
)

func TestStatus_String(t *testing.T) {
	cases := []struct {
		in   Status
		want string
	}{
		{Pass, "Pass"},
		{Fail, "Fail"},
		{Skip, "Skip"},
		{Error, "Error"},
		{Status(42), "Unknown(42)"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("String(%d) = %q, want %q", int(tc.in), got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Pass", Pass, false},
		{"fail", Fail, false},
		{"  SKIP  ", Skip, false},
		{"error", Error, false},
		{"", 0, true},
		{"bogus", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseStatus(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseStatus(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestMustParseStatus_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustParseStatus must panic on invalid input")
		}
	}()
	MustParseStatus("nope")
}

func TestStatus_TextMarshalling(t *testing.T) {
	b, err := Skip.MarshalText()
	if err != nil || string(b) != "Skip" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
	if _, err := Status(9).MarshalText(); err == nil {
		t.Fatalf("unknown status must not marshal")
	}

	var s Status
	if err := s.UnmarshalText([]byte("fail")); err != nil || s != Fail {
		t.Fatalf("UnmarshalText = %v, %v", s, err)
	}
	before := s
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("invalid token must fail")
	} else if s != before {
		t.Fatalf("failed unmarshal modified the target")
	}
	if !strings.Contains(Status(9).String(), "Unknown") {
		t.Fatalf("diagnostic form missing")
	}
}
