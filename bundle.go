package wasmbundle

import (
	"github.com/vesselworks/wasm-bundle/loader"
	"github.com/vesselworks/wasm-bundle/registry"
	"github.com/vesselworks/wasm-bundle/unit"
)

// Loader loads bundles and discovers units. See package loader.
type Loader = loader.Loader

// LoadedBundle is the result of a load call. See package loader.
type LoadedBundle = loader.LoadedBundle

// Unit is a resolved compiled unit. See package unit.
type Unit = unit.Unit

// Descriptor carries a unit's declared structure. See package unit.
type Descriptor = unit.Descriptor

// Option configures a Loader.
type Option = loader.Option

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	return loader.New(opts...)
}

// NewRegistry creates a shared registry for use with WithSharedRegistry.
func NewRegistry() *registry.Registry {
	return registry.New()
}

// Re-exported loader options.
var (
	WithLogger         = loader.WithLogger
	WithSharedRegistry = loader.WithSharedRegistry
	WithRuntimeConfig  = loader.WithRuntimeConfig
)
