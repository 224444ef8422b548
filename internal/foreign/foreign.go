// Package foreign declares the interface a host environment implements to
// describe values crossing from outside the type system: the shape of an
// imported JSON blob, a database row, or any other boundary value whose
// fields the inferencer cannot see by reading source.
package foreign

import "github.com/workman-lang/workman/internal/types"

// TypeProvider answers the inferencer's questions about a named foreign
// value: what type does it have, and (for record-shaped values) does it
// carry a given field. Implementations live outside this module entirely;
// this package only fixes the contract they must satisfy.
type TypeProvider interface {
	// Lookup returns the type of a foreign binding by name, or ok=false if
	// the provider has no knowledge of that name.
	Lookup(name string) (t types.Type, ok bool)

	// HasField reports whether the named foreign record type is known to
	// carry the given field, and if so its type. Used to discharge
	// HasField constraints against boundary values instead of against a
	// record type inferred from source.
	HasField(typeName, field string) (t types.Type, ok bool)
}

// NoProvider is a TypeProvider with no knowledge of anything, the default
// when a compilation unit declares no foreign imports.
type NoProvider struct{}

func (NoProvider) Lookup(string) (types.Type, bool)            { return nil, false }
func (NoProvider) HasField(string, string) (types.Type, bool) { return nil, false }
