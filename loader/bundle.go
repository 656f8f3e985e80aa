package loader

import (
	"context"

	"github.com/vesselworks/wasm-bundle/registry"
	"github.com/vesselworks/wasm-bundle/unit"
)

// LoadedBundle is the result of a successful load call. It is created
// once per call and never mutated afterwards.
type LoadedBundle struct {
	// Path is the bundle location the load was called with.
	Path string

	// Context is the isolated loading context scoped to this bundle.
	// The LoadedBundle owns it; it stays valid until Close.
	Context *registry.Context

	// Matches is the deduplicated set of units the predicate accepted,
	// in archive order. It is nil for a plain Load and non-nil (possibly
	// empty) for every filtered load.
	Matches []*unit.Unit
}

// Close tears down the bundle's isolated context, releasing its runtime
// and every unit compiled through it.
func (lb *LoadedBundle) Close(ctx context.Context) error {
	if lb.Context == nil {
		return nil
	}
	return lb.Context.Close(ctx)
}
