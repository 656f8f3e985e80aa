// Package registry implements unit-name resolution scopes.
//
// Registry is the shared scope owned by the host. Context is the isolated
// per-bundle scope: a dedicated wazero runtime plus a bundle-local unit
// map, fallback-chained to the shared Registry for names the bundle does
// not define. Every unit handle a load produces was resolved through its
// bundle's Context, never through the shared scope directly.
package registry
