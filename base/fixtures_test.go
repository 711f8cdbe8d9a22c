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
	"dirpx.dev/parx/apis"
)

// Widget fixture: a plain parametric object with scalar parameters.

type tWidget struct {
	Base
	Size  int    `param:"size"`
	Color string `param:"color"`
}

var tWidgetClass = &apis.Class{
	Path:   "basetest",
	Name:   "Widget",
	Parent: RootClass,
	Tags: map[string]any{
		"object_type":         "widget",
		"capability:parallel": false,
	},
}

// The New factories are wired up in init to avoid package-level
// initialization cycles (the constructors refer back to the class vars).
func init() {
	tWidgetClass.New = func() apis.Object { return newTWidget() }
	tGadgetClass.New = func() apis.Object { return newTGadget() }
	tPipeClass.New = func() apis.Object { return newTPipe() }
	tRegressorClass.New = func() apis.Object { return newTRegressor() }
}

func newTWidget() *tWidget {
	w := &tWidget{Size: 10, Color: "red"}
	w.Bind(tWidgetClass, w)
	return w
}

// Gadget fixture: a subclass of Widget overriding one class tag.

type tGadget struct {
	tWidget
	Gears int `param:"gears"`
}

var tGadgetClass = &apis.Class{
	Path:   "basetest",
	Name:   "Gadget",
	Parent: tWidgetClass,
	Tags: map[string]any{
		"capability:parallel": true,
	},
}

func newTGadget() *tGadget {
	g := &tGadget{Gears: 3}
	g.Size, g.Color = 10, "red"
	g.Bind(tGadgetClass, g)
	return g
}

// Pipe fixture: a composite object with parametric components.

type tPipe struct {
	Base
	First  apis.Object `param:"first"`
	Second apis.Object `param:"second"`
	Rate   float64     `param:"rate"`
}

var tPipeClass = &apis.Class{
	Path:   "basetest",
	Name:   "Pipe",
	Parent: RootClass,
}

func newTPipe() *tPipe {
	p := &tPipe{First: newTWidget(), Rate: 0.5}
	p.Bind(tPipeClass, p)
	return p
}

// Regressor fixture: a fittable object with learned state.

type tRegressor struct {
	Estimator
	Alpha float64 `param:"alpha"`
	Coef_ []float64
	N_    int
}

var tRegressorClass = &apis.Class{
	Path:   "basetest",
	Name:   "Regressor",
	Parent: EstimatorClass,
}

func newTRegressor() *tRegressor {
	r := &tRegressor{Alpha: 1.0}
	r.Bind(tRegressorClass, r)
	return r
}

func (r *tRegressor) Fit(xs []float64) {
	r.Coef_ = append([]float64(nil), xs...)
	r.N_ = len(xs)
	r.MarkFitted()
}
