package registry

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/vesselworks/wasm-bundle/errors"
	"github.com/vesselworks/wasm-bundle/unit"
)

func stamped(t *testing.T, d unit.Descriptor) []byte {
	t.Helper()
	data, err := unit.Stamp(unit.MinimalModule(), d)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestContext_Resolve(t *testing.T) {
	ctx := context.Background()
	c := NewContext(ctx, "b.zip", nil)
	defer c.Close(ctx)

	data := stamped(t, unit.Descriptor{Tags: []string{"m"}})

	u, err := c.Resolve(ctx, "plugins/http/handler.wasm", data)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.Name != "plugins.http.handler" {
		t.Errorf("name = %q", u.Name)
	}
	if u.Compiled == nil {
		t.Error("unit has no compiled module")
	}
	if !u.HasTag("m") {
		t.Error("descriptor not populated")
	}
	if got := c.Lookup("plugins.http.handler"); got != u {
		t.Error("resolved unit not registered in context")
	}
}

func TestContext_Resolve_NoDescriptor(t *testing.T) {
	ctx := context.Background()
	c := NewContext(ctx, "b.zip", nil)
	defer c.Close(ctx)

	u, err := c.Resolve(ctx, "bare.wasm", unit.MinimalModule())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(u.Descriptor.Tags) != 0 {
		t.Error("expected zero descriptor for unstamped module")
	}
}

func TestContext_Resolve_Failures(t *testing.T) {
	ctx := context.Background()
	c := NewContext(ctx, "b.zip", nil)
	defer c.Close(ctx)

	tests := []struct {
		name  string
		entry string
		data  []byte
		kind  errors.Kind
	}{
		{"bad entry name", "x.txt", unit.MinimalModule(), errors.KindBadName},
		{"malformed module", "x.wasm", []byte("garbage bytes"), errors.KindCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Resolve(ctx, tt.entry, tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %T", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", e.Kind, tt.kind)
			}
		})
	}
}

func TestContext_Resolve_DuplicateName(t *testing.T) {
	ctx := context.Background()
	c := NewContext(ctx, "b.zip", nil)
	defer c.Close(ctx)

	data := stamped(t, unit.Descriptor{})

	u1, err := c.Resolve(ctx, "a/b.wasm", data)
	if err != nil {
		t.Fatal(err)
	}
	u2, err := c.Resolve(ctx, "a/b.wasm", data)
	if err != nil {
		t.Fatal(err)
	}
	if u1 != u2 {
		t.Error("same entry name resolved to distinct handles")
	}
}

func TestContext_Lookup_FallbackChain(t *testing.T) {
	ctx := context.Background()

	shared := New()
	sharedUnit := &unit.Unit{Name: "platform.log"}
	shared.Register(sharedUnit)

	c := NewContext(ctx, "b.zip", shared)
	defer c.Close(ctx)

	// Unresolved names delegate to the shared registry.
	if got := c.Lookup("platform.log"); got != sharedUnit {
		t.Error("shared unit not reachable through context")
	}
	if got := c.Lookup("nowhere"); got != nil {
		t.Errorf("Lookup(nowhere) = %v, want nil", got)
	}

	// A bundle unit with the same name shadows the shared one.
	data := stamped(t, unit.Descriptor{Tags: []string{"bundle"}})
	u, err := c.Resolve(ctx, "platform/log.wasm", data)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Lookup("platform.log"); got != u {
		t.Error("bundle unit does not shadow shared unit")
	}
}

func TestContext_Isolation(t *testing.T) {
	ctx := context.Background()

	c1 := NewContext(ctx, "b.zip", nil)
	defer c1.Close(ctx)
	c2 := NewContext(ctx, "b.zip", nil)
	defer c2.Close(ctx)

	data := stamped(t, unit.Descriptor{})
	if _, err := c1.Resolve(ctx, "a.wasm", data); err != nil {
		t.Fatal(err)
	}

	if c2.Lookup("a") != nil {
		t.Error("unit resolved in one context is visible in another")
	}
	if len(c1.Units()) != 1 || len(c2.Units()) != 0 {
		t.Errorf("units: c1=%d c2=%d", len(c1.Units()), len(c2.Units()))
	}
}

func TestContext_WithConfig(t *testing.T) {
	ctx := context.Background()
	c := NewContextWithConfig(ctx, "b.zip", nil, &Config{MemoryLimitPages: 256})
	defer c.Close(ctx)

	if _, err := c.Resolve(ctx, "a.wasm", unit.MinimalModule()); err != nil {
		t.Fatalf("Resolve under memory limit: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Error("new registry not empty")
	}

	u := &unit.Unit{Name: "a"}
	r.Register(u)
	if r.Lookup("a") != u {
		t.Error("lookup after register failed")
	}

	// Re-registering overwrites.
	u2 := &unit.Unit{Name: "a"}
	r.Register(u2)
	if r.Lookup("a") != u2 || r.Len() != 1 {
		t.Error("re-register did not overwrite")
	}
}
