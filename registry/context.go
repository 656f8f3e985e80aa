package registry

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/vesselworks/wasm-bundle/archive"
	"github.com/vesselworks/wasm-bundle/errors"
	"github.com/vesselworks/wasm-bundle/unit"
)

// Config holds configuration for the isolated runtime backing a Context.
type Config struct {
	// MemoryLimitPages sets the maximum memory per compiled unit in pages
	// (64KB each). 0 means the runtime default.
	MemoryLimitPages uint32
}

// Context is the isolated loading context for one bundle: a dedicated
// wazero runtime that owns compilation of the bundle's units, plus a
// unit registry scoped to the bundle, fallback-chained to the shared
// Registry. One Context is created per load call; Contexts are never
// merged or reused across calls.
//
// Context is read-only after the load that populated it, apart from
// Close. Concurrent lookups are safe.
type Context struct {
	bundlePath string
	runtime    wazero.Runtime
	shared     *Registry
	mu         sync.RWMutex
	units      map[string]*unit.Unit
}

// NewContext creates a fresh isolated context scoped to the bundle at
// bundlePath. Creation always succeeds structurally; failures surface
// later, at resolution time.
func NewContext(ctx context.Context, bundlePath string, shared *Registry) *Context {
	return NewContextWithConfig(ctx, bundlePath, shared, nil)
}

// NewContextWithConfig creates an isolated context with custom runtime
// configuration.
func NewContextWithConfig(ctx context.Context, bundlePath string, shared *Registry, cfg *Config) *Context {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	return &Context{
		bundlePath: bundlePath,
		runtime:    wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		shared:     shared,
		units:      make(map[string]*unit.Unit),
	}
}

// BundlePath returns the bundle this context is scoped to
func (c *Context) BundlePath() string {
	return c.bundlePath
}

// Resolve maps a compiled-unit entry name to a live unit handle within
// this context: the entry name becomes the unit name, the bytes are
// compiled by the context's isolated runtime, and the unit descriptor is
// read from the module's custom section. The resolved unit is registered
// in the context.
//
// Two entries resolving to the same unit name yield the same handle.
// This is the only per-entry failure point of a load.
func (c *Context) Resolve(ctx context.Context, entryName string, data []byte) (*unit.Unit, error) {
	name, err := archive.UnitName(entryName)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	existing := c.units[name]
	c.mu.RUnlock()
	if existing != nil {
		return existing, nil
	}

	compiled, err := c.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Compile(entryName, err)
	}

	desc, found, err := unit.ExtractDescriptor(data)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Descriptor(entryName, err)
	}

	u := &unit.Unit{
		Name:       name,
		Compiled:   compiled,
		Descriptor: desc,
	}

	c.mu.Lock()
	c.units[name] = u
	c.mu.Unlock()

	Logger().Debug("resolved unit",
		zap.String("bundle", c.bundlePath),
		zap.String("entry", entryName),
		zap.String("unit", name),
		zap.Bool("descriptor", found),
	)

	return u, nil
}

// Lookup resolves a unit name through this context: bundle units first,
// then the shared registry. Returns nil if the name is not known to
// either scope.
func (c *Context) Lookup(name string) *unit.Unit {
	c.mu.RLock()
	u := c.units[name]
	c.mu.RUnlock()

	if u != nil {
		return u
	}
	if c.shared != nil {
		return c.shared.Lookup(name)
	}
	return nil
}

// Units returns a snapshot of the units resolved through this context,
// in no particular order. Shared-registry units are not included.
func (c *Context) Units() []*unit.Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*unit.Unit, 0, len(c.units))
	for _, u := range c.units {
		out = append(out, u)
	}
	return out
}

// Close releases the context's isolated runtime and every unit compiled
// through it. The owning LoadedBundle must not be used afterwards.
func (c *Context) Close(ctx context.Context) error {
	return c.runtime.Close(ctx)
}
