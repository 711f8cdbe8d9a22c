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

// Package parx provides a reflection-and-metadata framework for parametric
// objects.
//
// parx lets any object expose, introspect, clone, and reconfigure its own
// constructor parameters, carry declarative tags (metadata key/value pairs
// describing behavioral characteristics), and participate in automated
// conformance testing. It targets library authors building families of
// interchangeable algorithm implementations (estimators, transformers,
// pipeline stages) who need uniform parameter management without per-class
// boilerplate.
//
// # Design
//
// A concrete type opts into the contract by embedding base.Base (or
// base.Estimator for fittable objects) and binding it at construction time
// to an apis.Class descriptor: an explicit, immutable record of the class's
// module path, name, ancestor chain, class-level tags, and factory. The
// descriptor replaces implicit language-level inheritance: tag resolution
// walks the explicit Parent chain most-derived first, and discovery filters
// test ancestry against descriptor identity.
//
// Parameters are the exported struct fields of the concrete type (optionally
// named via `param` struct tags), recovered without instantiation by the
// introspector in utils/reflect. The invariant is strict: every parameter is
// stored unmodified as a same-named field, no renaming, no computed
// parameters.
//
// The core of parx is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: process-wide defaults that control display rendering, clone
//     config propagation, and recursion depth guards.
//
//   - Equaler: an ordered chain of equality plugins plus a generic
//     structural comparator. Plugins handle value shapes needing custom
//     comparison (sequences, tables, parametric objects) and are tried
//     before any generic iteration. NaN compares equal to NaN, since the
//     comparator checks reproducibility, not numeric order.
//
//   - Cloner: an ordered chain of clone plugins (Clonable convention,
//     parametric objects, maps, slices), falling through to copy-by-
//     reference for atomic values. Object clones are reconstructed through
//     the class factory and must pass a mandatory round-trip equality
//     postcondition.
//
//   - Builder: a pluggable factory that constructs Equaler and Cloner
//     chains for a given Config (and optional extension data).
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in. This means parx operations are lock-free on the
// hot path:
//
//	y, err := parx.Clone(x)
//	ok := parx.DeepEqual(x.MustParams(), y.MustParams())
//
// and concurrent callers always see a consistent snapshot.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     Clone(x apis.Object) (apis.Object, error)
//     CloneValue(v any) (any, error)
//     DeepEqual(a, b any) bool
//     Explain(a, b any) (bool, string)
//     Config() apis.Config
//     Equaler() apis.Equaler
//     Cloner() apis.Cloner
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetEqualer(eq apis.Equaler)
//     SetCloner(cln apis.Cloner)
//     UnpinEqualer() / UnpinCloner()
//     SetAll(...)
//
//     Each of these acquires an internal build lock, derives a new
//     snapshot (rebuilding or reusing Equaler / Cloner as needed), and
//     then atomically publishes that snapshot. SetEqualer/SetCloner pin
//     the layer they overwrite; pinned layers are not rebuilt on config
//     changes until unpinned. SetAll is the "hard reset" API, mainly used
//     by tests to get a clean deterministic state between cases.
//
//  3. Introspection:
//
//     ExtAs[T]() (T, bool)
//     IsEqualerPinned() / IsClonerPinned()
//
// # Companion packages
//
//   - apis: pure interface and descriptor definitions (Object, Class,
//     Cloner, Equaler, Builder, plugin contracts).
//   - base: the embeddable Base/Estimator implementations of the contract:
//     parameter get/set with composite "outer__inner" keys, tag resolution
//     with deprecation aliasing, per-instance config overlays, display
//     rendering.
//   - clone, equal: the plugin chains behind the global snapshot.
//   - lookup: the object-discovery registry; modules register loaders at
//     init time, AllObjects walks them with per-module failure isolation
//     and tag/ancestry filtering, PackageMetadata produces manifests.
//   - conformance: the compliance harness driving a check battery over
//     discovered objects, with aggregate-report and fail-fast modes.
//
// # Concurrency model
//
// Reads are wait-free: they load the current *state atomically and never
// take locks. Writes take a short build mutex, assemble a brand-new state
// struct, and publish it via an atomic pointer swap. Individual objects are
// not synchronized; an instance is owned by one goroutine at a time.
//
// # Scope
//
// parx is intentionally small. It does not perform learning or fitting
// computation, it is not a dependency-injection container, and it is not a
// serialization format. It only solves one job:
//
//	"Let a family of parametric objects expose, round-trip, clone, and
//	 discover their own configuration, uniformly and testably."
//
// Everything else (fitting logic, pipelines, persistence, CLIs) belongs to
// higher layers.
package parx
