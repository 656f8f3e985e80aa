// Package unit defines the resolved compiled unit (the type handle) and
// the descriptor codec.
//
// A compiled unit is one WebAssembly core module stored as a single bundle
// entry. Its structural declarations live in a custom section named
// "unit-descriptor" whose payload is a JSON Descriptor: metadata tags,
// direct base units, and implemented capability contracts. ExtractDescriptor
// reads that section at resolution time; Stamp writes it when packaging.
//
// The descriptor is an explicit, declared record rather than something
// inferred from the module body: discovery queries are graph-membership
// tests over these declarations, resolved through the bundle's loading
// context.
package unit
