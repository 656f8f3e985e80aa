// Package predicate implements the structural discovery predicates:
// metadata-tag match, ancestor-type match, and capability-contract match.
//
// All three consume a resolved unit and return a boolean. The ancestor
// and contract predicates walk the declared base-unit graph through a
// Resolver, so bases defined in the shared registry participate in the
// walk exactly like bundle-local ones.
package predicate
