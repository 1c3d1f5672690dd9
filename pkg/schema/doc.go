// Package schema implements the metadata-driven property access engine
// shared by every directory record type.
//
// A Registry is built once from a list of type declarations. Each type
// sits on a single-inheritance chain rooted at a type with no super type.
// Records created from the registry expose a flat, name-keyed property
// namespace through Get, Set, IsSet and Unset. Each call walks the
// record's handler chain from the most-derived type to the root; every
// level answers for the properties it declares itself and for the
// extension properties registered against it, and passes everything else
// up the chain.
//
// Multi-valued properties accumulate: Set appends. Add, Remove and
// ReplaceAll edit a multi-valued property explicitly, and Get always
// returns a copy, never the backing slice.
//
// Extension properties are registered against extensible types at
// configuration time with Register and removed with ClearAll; Replace does
// both for a batch under one lock. Registration never fails; conflicts are
// logged as warnings and ignored.
package schema
