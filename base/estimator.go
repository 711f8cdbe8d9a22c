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
	"reflect"
	"strings"

	"dirpx.dev/parx/apis"
	uref "dirpx.dev/parx/utils/reflect"
)

// ErrNotFitted is returned by CheckIsFitted and FittedParams on an estimator
// that was never fitted, or whose fitted state was removed by Reset.
var ErrNotFitted = errors.New("parx(base): estimator is not fitted")

// EstimatorClass is the ancestor descriptor of all fittable objects.
// Fittable class chains should terminate here (which transitively reaches
// RootClass).
var EstimatorClass = &apis.Class{
	Path:   "parx",
	Name:   "Estimator",
	Doc:    "Fittable parametric object with explicit fitted state.",
	Parent: RootClass,
	Tags:   map[string]any{"object_type": "estimator"},
}

// Estimator extends Base with an explicit fitted-state lifecycle. Learned
// state lives in exported struct fields whose names carry a trailing
// underscore ("Coef_"); those fields are excluded from the parameter
// contract and zeroed by Reset.
type Estimator struct {
	Base

	fitted bool
}

// MarkFitted records a successful fit. Concrete Fit implementations call it
// after populating their learned fields.
func (e *Estimator) MarkFitted() {
	e.fitted = true
}

// IsFitted reports whether the estimator has been fitted since construction
// or the last Reset.
func (e *Estimator) IsFitted() bool {
	return e != nil && e.fitted
}

// CheckIsFitted returns ErrNotFitted unless the estimator is fitted. It is
// the guard concrete Predict/Transform implementations call first.
func (e *Estimator) CheckIsFitted() error {
	if e.IsFitted() {
		return nil
	}
	return fmt.Errorf("%w: %s; call Fit first", ErrNotFitted, e.Class().FullPath())
}

// FittedParams returns the learned state: the values of the trailing-
// underscore fields, keyed by their names with the underscore trimmed.
// It fails with ErrNotFitted on an unfitted estimator.
func (e *Estimator) FittedParams() (apis.Params, error) {
	if err := e.CheckIsFitted(); err != nil {
		return nil, err
	}
	rv, err := uref.StructValue(e.self)
	if err != nil {
		return nil, err
	}
	fs, err := uref.FittedFields(rv.Type())
	if err != nil {
		return nil, err
	}
	out := make(apis.Params, len(fs))
	for _, f := range fs {
		out[strings.TrimSuffix(f.Name, "_")] = rv.FieldByIndex(f.Index).Interface()
	}
	return out, nil
}

// Reset returns the estimator to its post-construction state: learned
// fields are zeroed, the fitted flag and instance-level tag overrides are
// cleared. Parameters and config overrides survive.
func (e *Estimator) Reset() error {
	if e == nil || e.self == nil {
		return ErrNotBound
	}
	rv, err := uref.StructValue(e.self)
	if err != nil {
		return err
	}
	fs, err := uref.FittedFields(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range fs {
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanSet() {
			return fmt.Errorf("%w: fitted field %q is not settable", ErrNotIntrospectable, f.Name)
		}
		fv.Set(reflect.Zero(fv.Type()))
	}
	e.fitted = false
	e.dynTags = nil
	return nil
}
