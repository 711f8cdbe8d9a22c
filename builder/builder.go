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

package builder

import (
	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/clone"
	"dirpx.dev/parx/equal"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildEqualer builds and returns a new apis.Equaler based on the provided
// configuration. The default chain tries sequence and table plugins ahead of
// the object plugin and the generic structural tail.
func (b *builder) BuildEqualer(_ apis.Config, _ apis.Equaler, _ any) apis.Equaler {
	return equal.New(
		equal.NewSequencePlugin(),
		equal.NewTablePlugin(),
		equal.NewObjectPlugin(),
	)
}

// BuildCloner builds and returns a new apis.Cloner based on the provided
// configuration and Equaler. The Equaler is used for the clone round-trip
// postcondition on object clones.
func (b *builder) BuildCloner(_ apis.Config, eq apis.Equaler, _ apis.Cloner, _ any) apis.Cloner {
	return clone.New(
		clone.NewClonablePlugin(),
		clone.NewObjectPlugin(eq),
		clone.NewMapPlugin(),
		clone.NewSlicePlugin(),
	)
}
