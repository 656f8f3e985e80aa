package unit

import (
	"github.com/tetratelabs/wazero"
)

// Unit is a resolved compiled unit: one type's compiled representation,
// loaded from a single bundle entry. It answers the three structural
// queries (metadata tag, ancestor chain, capability contract) through
// its Descriptor; the ancestor and contract queries that need to follow
// base-unit names across the bundle live in package predicate.
type Unit struct {
	// Name is the dotted unit name derived from the archive entry path,
	// e.g. "plugins.http.handler" for entry "plugins/http/handler.wasm".
	Name string

	// Compiled is the module as compiled by the bundle's isolated runtime.
	Compiled wazero.CompiledModule

	// Descriptor holds the declarations read from the module's
	// unit-descriptor custom section at resolution time.
	Descriptor Descriptor
}

// Descriptor carries a unit's declared structure. It is populated from
// the unit-descriptor custom section; a unit without that section gets
// a zero Descriptor (no tags, no bases, no contracts).
type Descriptor struct {
	// Tags are the metadata markers declared on the unit.
	Tags []string `json:"tags,omitempty"`

	// Extends names the unit's direct base units. Multiple bases are
	// allowed; ancestor queries walk the full graph.
	Extends []string `json:"extends,omitempty"`

	// Implements names the capability contracts the unit declares.
	Implements []string `json:"implements,omitempty"`
}

// HasTag reports whether the unit declares the given metadata tag.
// Matching is exact.
func (u *Unit) HasTag(tag string) bool {
	for _, t := range u.Descriptor.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DeclaresContract reports whether the unit itself declares the given
// capability contract. Inherited contracts are handled by the
// Implements predicate, which walks the ancestor graph.
func (u *Unit) DeclaresContract(contract string) bool {
	for _, c := range u.Descriptor.Implements {
		if c == contract {
			return true
		}
	}
	return false
}
