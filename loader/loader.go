package loader

import (
	"context"

	"go.uber.org/zap"

	"github.com/vesselworks/wasm-bundle/archive"
	"github.com/vesselworks/wasm-bundle/predicate"
	"github.com/vesselworks/wasm-bundle/registry"
	"github.com/vesselworks/wasm-bundle/unit"
)

// Loader loads bundles into isolated contexts and discovers units that
// satisfy a structural predicate. A Loader is safe for concurrent use;
// each load call owns its archive handle and context independently.
type Loader struct {
	shared *registry.Registry
	cfg    *registry.Config
	log    *zap.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the loader's logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		ld.log = l
	}
}

// WithSharedRegistry chains every created context to the given shared
// registry. Names a bundle does not define resolve through it.
func WithSharedRegistry(r *registry.Registry) Option {
	return func(ld *Loader) {
		ld.shared = r
	}
}

// WithRuntimeConfig sets the runtime configuration applied to each
// bundle's isolated runtime.
func WithRuntimeConfig(cfg *registry.Config) Option {
	return func(ld *Loader) {
		ld.cfg = cfg
	}
}

// New creates a Loader
func New(opts ...Option) *Loader {
	ld := &Loader{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load opens the bundle at path and returns it with a fresh isolated
// context and no match set. No units are resolved; resolution happens
// on demand through the context, or up front via LoadAll.
func (ld *Loader) Load(ctx context.Context, path string) (*LoadedBundle, error) {
	arc, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer arc.Close()

	lctx := registry.NewContextWithConfig(ctx, path, ld.shared, ld.cfg)

	ld.log.Debug("bundle loaded", zap.String("bundle", path))

	return &LoadedBundle{
		Path:    path,
		Context: lctx,
	}, nil
}

// LoadAll loads the bundle and resolves every compiled unit in it.
// Matches holds all resolved units, in archive order.
func (ld *Loader) LoadAll(ctx context.Context, path string) (*LoadedBundle, error) {
	return ld.loadFiltered(ctx, path, func(predicate.Resolver) predicate.Predicate {
		return func(*unit.Unit) bool { return true }
	})
}

// LoadWhereTagged loads the bundle and collects the units declaring the
// given metadata tag.
func (ld *Loader) LoadWhereTagged(ctx context.Context, path, tag string) (*LoadedBundle, error) {
	return ld.loadFiltered(ctx, path, func(predicate.Resolver) predicate.Predicate {
		return predicate.HasTag(tag)
	})
}

// LoadWhereExtends loads the bundle and collects the units whose ancestor
// chain includes base, at any depth.
func (ld *Loader) LoadWhereExtends(ctx context.Context, path, base string) (*LoadedBundle, error) {
	return ld.loadFiltered(ctx, path, func(res predicate.Resolver) predicate.Predicate {
		return predicate.DerivedFrom(res, base)
	})
}

// LoadWhereImplements loads the bundle and collects the units that
// implement the given capability contract, directly or via an ancestor.
func (ld *Loader) LoadWhereImplements(ctx context.Context, path, contract string) (*LoadedBundle, error) {
	return ld.loadFiltered(ctx, path, func(res predicate.Resolver) predicate.Predicate {
		return predicate.Implements(res, contract)
	})
}

// loadFiltered is the discovery pipeline: open the archive, create the
// isolated context, resolve every compiled-unit entry through it, test
// the predicate, and collect matches.
//
// Resolution completes for the whole bundle before any predicate runs:
// the ancestor-walking predicates resolve base names through the context,
// and a unit may precede its base in archive order. Evaluating per entry
// would make membership depend on entry order.
//
// Any per-entry resolution failure aborts the whole load: the context is
// torn down and no partial match set escapes. The archive handle is
// released on every path.
func (ld *Loader) loadFiltered(ctx context.Context, path string, build func(predicate.Resolver) predicate.Predicate) (*LoadedBundle, error) {
	arc, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer arc.Close()

	lctx := registry.NewContextWithConfig(ctx, path, ld.shared, ld.cfg)

	var resolved []*unit.Unit
	seen := make(map[string]bool)

	for entry := range arc.Units() {
		data, err := arc.Read(entry)
		if err != nil {
			_ = lctx.Close(ctx)
			return nil, err
		}

		u, err := lctx.Resolve(ctx, entry, data)
		if err != nil {
			_ = lctx.Close(ctx)
			return nil, err
		}

		if seen[u.Name] {
			continue
		}
		seen[u.Name] = true
		resolved = append(resolved, u)
	}

	pred := build(lctx)

	matches := []*unit.Unit{}
	for _, u := range resolved {
		if pred(u) {
			matches = append(matches, u)
		}
	}

	ld.log.Debug("bundle discovery complete",
		zap.String("bundle", path),
		zap.Int("matches", len(matches)),
	)

	return &LoadedBundle{
		Path:    path,
		Context: lctx,
		Matches: matches,
	}, nil
}
