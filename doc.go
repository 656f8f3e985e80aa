// Package wasmbundle loads packaged bundles of compiled WebAssembly units
// into isolated execution contexts and discovers the units that satisfy a
// structural predicate: tagged with a metadata marker, derived from a base
// unit, or implementing a capability contract.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wasmbundle/          Root package with the public facade
//	├── loader/          Load orchestration and the LoadedBundle result
//	├── registry/        Shared registry and isolated per-bundle contexts
//	├── archive/         Bundle archive access and entry enumeration
//	├── unit/            Compiled unit handles and the descriptor codec
//	├── predicate/       Tag, ancestor, and contract discovery predicates
//	└── errors/          Structured error types
//
// # Quick Start
//
// Load a plugin bundle and find the units tagged for registration:
//
//	ld := wasmbundle.NewLoader()
//
//	lb, err := ld.LoadWhereTagged(ctx, "plugins.bndl", "registerable")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lb.Close(ctx)
//
//	for _, u := range lb.Matches {
//	    fmt.Println(u.Name)
//	}
//
// # Bundles
//
// A bundle is a zip archive whose entries mirror a unit naming hierarchy:
// the entry "plugins/http/handler.wasm" defines the unit
// "plugins.http.handler". Each unit is a core WebAssembly module; its
// structural declarations (tags, bases, contracts) travel in a
// "unit-descriptor" custom section, written with unit.Stamp when packaging.
//
// # Isolation
//
// Every load call creates a fresh isolated context backed by its own wazero
// runtime. Unit names the bundle does not define fall back to an optional
// shared registry, so platform units resolve identically inside and outside
// a bundle. Contexts are never merged or reused across calls; two loads of
// the same bundle are independent.
//
// # Failure Model
//
// A load call either returns a complete LoadedBundle or a single error.
// Any failure at archive-open or unit-resolution time aborts the whole
// call; no partial match set is returned. The archive handle is released
// on every path. Errors stay distinguishable via errors.Phase and
// errors.Kind for callers that want more than the boolean-success view.
package wasmbundle
