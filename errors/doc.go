// Package errors provides structured error types for the wasm-bundle library.
//
// Errors are categorized by Phase (where in the load call the error occurred)
// and Kind (error category). The Error type carries the bundle path, archive
// entry, unit name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindCompile).
//		Bundle("plugins.bndl").
//		Entry("plugins/http/handler.wasm").
//		Detail("module rejected by runtime").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Open(bundlePath, cause)
//	err := errors.Resolution(entryName, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// A load call produces at most one error; Phase and Kind keep the failure
// kinds distinguishable without widening the external contract.
package errors
