// Package loader orchestrates bundle loading and unit discovery.
//
// Every operation is a variant of one pipeline: open the bundle archive,
// create an isolated loading context, resolve each compiled-unit entry
// through that context, test a predicate, collect the matches, close the
// archive. The plain Load skips resolution entirely; LoadWhereTagged,
// LoadWhereExtends and LoadWhereImplements each select one predicate.
//
// A load either yields a complete LoadedBundle or a single error; there
// are no partial results. The archive handle is released on every exit
// path, and a failed load also tears down the context it created.
package loader
