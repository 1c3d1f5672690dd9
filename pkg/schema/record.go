package schema

import (
	"fmt"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// Record is one directory entity. It holds a value slot for every
// property on its type's chain plus any explicit extension values.
// A Record is not safe for concurrent mutation.
type Record struct {
	reg    *Registry
	h      *handler
	single map[fieldKey]Value
	multi  map[fieldKey][]Value
	ext    map[fieldKey]Value
	unset  map[string]bool
}

func newRecord(reg *Registry, h *handler) *Record {
	return &Record{
		reg:    reg,
		h:      h,
		single: make(map[fieldKey]Value),
		multi:  make(map[fieldKey][]Value),
		ext:    make(map[fieldKey]Value),
		unset:  make(map[string]bool),
	}
}

// Registry returns the registry the record was created from.
func (r *Record) Registry() *Registry { return r.reg }

// TypeName returns the name of the record's type.
func (r *Record) TypeName() string { return r.h.desc.name }

// first returns the slot of the most-derived level owning name.
func (r *Record) first(name string) (slot, bool) {
	for h := r.h; h != nil; h = h.parent {
		if s, ok := h.resolve(r.reg, name); ok {
			return s, true
		}
	}
	return slot{}, false
}

// owners returns the slots of every level owning name, most-derived first.
func (r *Record) owners(name string) []slot {
	var out []slot
	for h := r.h; h != nil; h = h.parent {
		if s, ok := h.resolve(r.reg, name); ok {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the value of a property. A multi-valued declared property
// always yields a list, empty if nothing was ever added. An extension
// property yields its explicit value, else its registered default, else
// null. Unknown names yield null.
func (r *Record) Get(name string) Value {
	if s, ok := r.first(name); ok {
		return s.get(r)
	}
	return Null()
}

// IsSet reports whether a property holds a value. A multi-valued property
// is set only while its sequence is non-empty. An extension property with
// a registered default is always set. Unknown names are never set.
func (r *Record) IsSet(name string) bool {
	if s, ok := r.first(name); ok {
		return s.isSet(r)
	}
	return false
}

// IsDefaulted reports whether an extension property is reading its
// registered default rather than an explicit value.
func (r *Record) IsDefaulted(name string) bool {
	if s, ok := r.first(name); ok {
		return s.isDefaulted(r)
	}
	return false
}

// IsUnset reports whether name was explicitly unset and not set again
// since. Only types declared with TracksUnset remember this.
func (r *Record) IsUnset(name string) bool {
	return r.unset[name]
}

// Set assigns a property at every level of the chain that owns name.
// Single-valued properties are overwritten, multi-valued properties
// append, and a list assigned to a multi-valued extension replaces it.
// The value is checked against every owning level before anything is
// stored, so a *TypeMismatchError leaves the record unchanged. Unknown
// names are ignored.
func (r *Record) Set(name string, v Value) error {
	slots := r.owners(name)
	for _, s := range slots {
		if err := r.reg.check(name, s.dataType, s.multi, v); err != nil {
			return err
		}
	}
	for _, s := range slots {
		s.set(r, v)
	}
	if len(slots) > 0 {
		delete(r.unset, name)
	}
	return nil
}

// Unset clears a property at every level of the chain that owns name.
// Multi-valued properties become empty; extension properties fall back to
// their registered default. Unknown names are ignored.
func (r *Record) Unset(name string) {
	slots := r.owners(name)
	for _, s := range slots {
		s.unset(r)
	}
	if len(slots) == 0 {
		return
	}
	for h := r.h; h != nil; h = h.parent {
		if h.desc.tracksUnset {
			r.unset[name] = true
			return
		}
	}
}

// multiOwners returns the owning slots of name, failing unless there is at
// least one and all of them are multi-valued.
func (r *Record) multiOwners(name string) ([]slot, error) {
	slots := r.owners(name)
	if len(slots) == 0 {
		return nil, fmt.Errorf("%s.%s: %w", r.TypeName(), name, types.ErrUnknownProperty)
	}
	for _, s := range slots {
		if !s.multi {
			return nil, fmt.Errorf("%s.%s: %w", r.TypeName(), name, types.ErrNotMultiValued)
		}
	}
	return slots, nil
}

// Add appends values to a multi-valued property. Lists are flattened.
func (r *Record) Add(name string, vs ...Value) error {
	slots, err := r.multiOwners(name)
	if err != nil {
		return err
	}
	elems := List(vs...)
	for _, s := range slots {
		if err := r.reg.check(name, s.dataType, true, elems); err != nil {
			return err
		}
	}
	for _, s := range slots {
		s.add(r, elems.list)
	}
	delete(r.unset, name)
	return nil
}

// Remove deletes the first occurrence of v from a multi-valued property
// and reports whether anything was removed.
func (r *Record) Remove(name string, v Value) (bool, error) {
	slots, err := r.multiOwners(name)
	if err != nil {
		return false, err
	}
	removed := false
	for _, s := range slots {
		if s.remove(r, v) {
			removed = true
		}
	}
	return removed, nil
}

// ReplaceAll swaps the whole sequence of a multi-valued property for vs.
func (r *Record) ReplaceAll(name string, vs ...Value) error {
	slots, err := r.multiOwners(name)
	if err != nil {
		return err
	}
	elems := List(vs...)
	for _, s := range slots {
		if err := r.reg.check(name, s.dataType, true, elems); err != nil {
			return err
		}
	}
	for _, s := range slots {
		s.replace(r, elems.list)
	}
	delete(r.unset, name)
	return nil
}

// Validate returns an error wrapping types.ErrMandatoryMissing for the
// first mandatory property that is not set.
func (r *Record) Validate() error {
	for _, name := range r.PropertyNames() {
		if r.IsMandatory(name) && !r.IsSet(name) {
			return fmt.Errorf("%s.%s: %w", r.TypeName(), name, types.ErrMandatoryMissing)
		}
	}
	return nil
}

// PropertyNames returns the own, extension and inherited property names of
// the record's type.
func (r *Record) PropertyNames() []string { return r.reg.PropertyNames(r.TypeName()) }

// DataType returns the data type of a property.
func (r *Record) DataType(name string) (string, bool) { return r.reg.DataType(r.TypeName(), name) }

// IsMandatory reports whether a property must be set.
func (r *Record) IsMandatory(name string) bool { return r.reg.IsMandatory(r.TypeName(), name) }

// IsPersistentProperty reports whether a property is stored durably.
func (r *Record) IsPersistentProperty(name string) bool {
	return r.reg.IsPersistentProperty(r.TypeName(), name)
}

// IsExtension reports whether a property is an extension property.
func (r *Record) IsExtension(name string) bool { return r.reg.IsExtension(r.TypeName(), name) }

// IsMultiValuedProperty reports whether a property is multi-valued.
func (r *Record) IsMultiValuedProperty(name string) bool {
	return r.reg.IsMultiValuedProperty(r.TypeName(), name)
}

// SuperTypes returns the ancestors of the record's type, root first.
func (r *Record) SuperTypes() []string { return r.h.desc.SuperTypes() }

// IsSubType reports whether superTypeName is an ancestor of the record's
// type.
func (r *Record) IsSubType(superTypeName string) bool { return r.h.desc.isAncestor(superTypeName) }

// ExtendedPropertyNames returns the extension names registered on the
// record's own type.
func (r *Record) ExtendedPropertyNames() []string { return r.reg.NamesFor(r.TypeName()) }
