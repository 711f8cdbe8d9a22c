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

// Package conformance drives a battery of contract checks over discovered
// parametric objects.
//
// The default battery covers the core contract: parameter round-tripping,
// clone semantics, tag resolution, equality reflexivity, and display
// rendering. Typical use is a single test in the package that ships the
// objects:
//
//	records, _, err := lookup.AllObjects(lookup.WithBase(lookup.MatchAny, base.RootClass))
//	if err != nil { ... }
//	report, err := conformance.New().Run(records)
//	if err != nil { ... }
//	if err := report.Err(); err != nil { ... }
package conformance

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/lookup"
)

// ErrNonConformant is the sentinel wrapped by Report.Err when any check
// failed or errored.
var ErrNonConformant = errors.New("parx(conformance): contract violations found")

// Check is one named contract check. Instance-level checks set Run, which
// receives a fresh instance per invocation; class-level checks set RunClass,
// which receives the descriptor and needs no instance at all. Either returns
// a verdict with a human-readable reason for anything but Pass.
type Check struct {
	Name     string
	Run      func(obj apis.Object) (Status, string)
	RunClass func(cls *apis.Class) (Status, string)
}

// Result is the outcome of one check on one instance.
type Result struct {
	Object   string
	Instance int
	Check    string
	Status   Status
	Reason   string
}

// Report aggregates the results of a run.
type Report struct {
	Results []Result
}

// Counts returns the number of results per status.
func (r *Report) Counts() map[Status]int {
	out := make(map[Status]int, 4)
	for _, res := range r.Results {
		out[res.Status]++
	}
	return out
}

// Failures returns the Fail and Error results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == Fail || res.Status == Error {
			out = append(out, res)
		}
	}
	return out
}

// Err returns nil for a clean report, or an error listing every failure,
// wrapped around ErrNonConformant for errors.Is matching.
func (r *Report) Err() error {
	fails := r.Failures()
	if len(fails) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, f := range fails {
		fmt.Fprintf(&sb, "\n  %s[%d] %s: %s: %s", f.Object, f.Instance, f.Check, f.Status, f.Reason)
	}
	return fmt.Errorf("%w:%s", ErrNonConformant, sb.String())
}

// Runner runs a check battery over discovery records.
type Runner struct {
	checks   []Check
	failFast bool
}

// RunnerOption configures New.
type RunnerOption func(*Runner)

// WithFailFast stops the run at the first Fail or Error result.
func WithFailFast() RunnerOption {
	return func(r *Runner) { r.failFast = true }
}

// WithChecks replaces the default battery.
func WithChecks(checks ...Check) RunnerOption {
	return func(r *Runner) { r.checks = checks }
}

// WithExtraChecks appends author-defined checks to the battery.
func WithExtraChecks(checks ...Check) RunnerOption {
	return func(r *Runner) { r.checks = append(r.checks, checks...) }
}

// New constructs a Runner with the default check battery.
func New(opts ...RunnerOption) *Runner {
	r := &Runner{checks: DefaultChecks()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies the battery to every instance of every record. Instances come
// from the class's Examples factory when present, falling back to a single
// factory-default instance. A class that cannot produce any instance yields
// Skip results rather than aborting the run. The error return is reserved
// for an unusable runner; contract verdicts live in the report.
func (r *Runner) Run(records []lookup.Record) (*Report, error) {
	if len(r.checks) == 0 {
		return nil, errors.New("parx(conformance): no checks configured")
	}
	report := &Report{}
	for _, rec := range records {
		if done := r.runRecord(report, rec); done {
			break
		}
	}
	return report, nil
}

// runRecord applies the battery to one record, reporting true when fail-fast
// tripped. Class-level checks always run on the descriptor; only the
// instance-level checks degrade to Skip when no instance can be produced.
func (r *Runner) runRecord(report *Report, rec lookup.Record) bool {
	name := rec.Class.FullPath()
	for _, c := range r.checks {
		if c.RunClass == nil {
			continue
		}
		res := Result{Object: name, Check: c.Name}
		res.Status, res.Reason = runClassCheck(c, rec.Class)
		report.Results = append(report.Results, res)
		if r.failFast && (res.Status == Fail || res.Status == Error) {
			return true
		}
	}
	n, err := instanceCount(rec.Class)
	if err != nil {
		for _, c := range r.checks {
			if c.Run == nil {
				continue
			}
			report.Results = append(report.Results, Result{
				Object: name, Check: c.Name, Status: Skip, Reason: err.Error(),
			})
		}
		return false
	}
	for i := 0; i < n; i++ {
		for _, c := range r.checks {
			if c.Run == nil {
				continue
			}
			obj, err := makeInstance(rec.Class, i)
			res := Result{Object: name, Instance: i, Check: c.Name}
			if err != nil {
				res.Status, res.Reason = Skip, err.Error()
			} else {
				res.Status, res.Reason = runCheck(c, obj)
			}
			report.Results = append(report.Results, res)
			if r.failFast && (res.Status == Fail || res.Status == Error) {
				return true
			}
		}
	}
	return false
}

// runCheck invokes one instance-level check with panic isolation: a
// panicking check reports Error instead of taking the harness down.
func runCheck(c Check, obj apis.Object) (st Status, reason string) {
	defer func() {
		if rec := recover(); rec != nil {
			st, reason = Error, fmt.Sprintf("check panic: %v", rec)
		}
	}()
	if c.Run == nil {
		return Error, "check has no instance hook"
	}
	return c.Run(obj)
}

// runClassCheck invokes one class-level check with panic isolation.
func runClassCheck(c Check, cls *apis.Class) (st Status, reason string) {
	defer func() {
		if rec := recover(); rec != nil {
			st, reason = Error, fmt.Sprintf("check panic: %v", rec)
		}
	}()
	return c.RunClass(cls)
}

// instanceCount reports how many instances a class can produce.
func instanceCount(cls *apis.Class) (int, error) {
	if cls == nil || cls.New == nil {
		return 0, errors.New("class has no factory")
	}
	if cls.Examples == nil {
		return 1, nil
	}
	exs, err := safeExamples(cls)
	if err != nil {
		return 0, err
	}
	if len(exs) == 0 {
		return 1, nil
	}
	return len(exs), nil
}

// makeInstance builds the i-th example instance of a class: a factory
// default configured with the i-th example parameter set, when one exists.
func makeInstance(cls *apis.Class, i int) (obj apis.Object, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			obj, err = nil, fmt.Errorf("constructor panic: %v", rec)
		}
	}()
	obj = cls.New()
	if obj == nil {
		return nil, errors.New("factory returned nil")
	}
	if cls.Examples == nil {
		return obj, nil
	}
	exs, err := safeExamples(cls)
	if err != nil {
		return nil, err
	}
	if i >= len(exs) {
		return obj, nil
	}
	if err := obj.SetParams(exs[i]); err != nil {
		return nil, fmt.Errorf("applying example %d: %w", i, err)
	}
	return obj, nil
}

// safeExamples calls the Examples factory with panic isolation.
func safeExamples(cls *apis.Class) (exs []apis.Params, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			exs, err = nil, fmt.Errorf("examples panic: %v", rec)
		}
	}()
	return cls.Examples(), nil
}
