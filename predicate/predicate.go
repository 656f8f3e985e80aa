package predicate

import (
	"github.com/vesselworks/wasm-bundle/unit"
)

// Resolver resolves unit names encountered while walking ancestor
// declarations. registry.Context satisfies it; lookups go through the
// bundle scope with shared-registry fallback.
type Resolver interface {
	Lookup(name string) *unit.Unit
}

// Predicate tests one resolved unit. Predicates are total: given a
// resolved unit they never fail, they only answer yes or no.
type Predicate func(*unit.Unit) bool

// HasTag matches units that declare the given metadata tag.
// Matching is exact: a unit tagged "m2" does not match tag "m".
func HasTag(tag string) Predicate {
	return func(u *unit.Unit) bool {
		return u.HasTag(tag)
	}
}

// DerivedFrom matches units whose ancestor chain includes base, at any
// depth. The unit itself is excluded: a unit named base does not match.
// Multiple declared bases are all walked; cycles in the declarations
// terminate the walk rather than looping.
//
// Membership is tested on declared base names, so a base that is not
// itself resolvable still counts when a unit names it directly.
func DerivedFrom(res Resolver, base string) Predicate {
	return func(u *unit.Unit) bool {
		found := false
		walkAncestors(res, u, func(name string, _ *unit.Unit) bool {
			if name == base {
				found = true
				return false
			}
			return true
		})
		return found
	}
}

// Implements matches units that implement the given capability contract:
// the contract's identity appears in the unit's declared contract set, or
// in the declared set of any ancestor. This is genuine contract-membership
// testing over declarations; no instance values are involved.
func Implements(res Resolver, contract string) Predicate {
	return func(u *unit.Unit) bool {
		if u.DeclaresContract(contract) {
			return true
		}
		found := false
		walkAncestors(res, u, func(_ string, ancestor *unit.Unit) bool {
			if ancestor != nil && ancestor.DeclaresContract(contract) {
				found = true
				return false
			}
			return true
		})
		return found
	}
}

// walkAncestors visits every name reachable through Extends declarations,
// breadth-first, excluding u itself. visit receives the declared name and
// the resolved unit for it (nil when the name is not resolvable); it
// returns false to stop the walk. Cycle-safe via a visited set.
func walkAncestors(res Resolver, u *unit.Unit, visit func(name string, resolved *unit.Unit) bool) {
	visited := map[string]bool{u.Name: true}
	queue := append([]string(nil), u.Descriptor.Extends...)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if visited[name] {
			continue
		}
		visited[name] = true

		var resolved *unit.Unit
		if res != nil {
			resolved = res.Lookup(name)
		}

		if !visit(name, resolved) {
			return
		}

		if resolved != nil {
			queue = append(queue, resolved.Descriptor.Extends...)
		}
	}
}
