package schema

import (
	"sort"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// Extension describes a property registered on a type at configuration
// time.
type Extension struct {
	Name        string
	DataType    string
	MultiValued bool
	Default     Value // Null when no default was registered.
}

// HasDefault reports whether a default value was registered.
func (e Extension) HasDefault() bool { return !e.Default.IsNull() }

// extensionTable holds the extension properties of one extensible type.
// It is guarded by the owning Registry's mutex.
type extensionTable struct {
	entries map[string]Extension
}

func newExtensionTable() *extensionTable {
	return &extensionTable{entries: make(map[string]Extension)}
}

// names returns the registered names, sorted.
func (t *extensionTable) names() []string {
	out := make([]string, 0, len(t.entries))
	for n := range t.entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// extension looks up an extension property registered directly on
// typeName.
func (r *Registry) extension(typeName, prop string) (Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := r.ext[typeName]
	if t == nil {
		return Extension{}, false
	}
	e, ok := t.entries[prop]
	return e, ok
}

// Registration is one Register request, used to apply a batch with
// Replace.
type Registration struct {
	TypeName    string
	Name        string
	DataType    string
	MultiValued bool
	Default     Value
}

// Register adds an extension property to an extensible type and reports
// whether it was accepted. Registration never fails: a request is logged
// as a warning and ignored when the type is unknown or not extensible,
// the data type is empty or "null" or names no known type, the name is
// already declared or registered anywhere on the type's chain, or the
// default value does not match the data type. A scalar default of a
// multi-valued property is stored as a one-element list.
func (r *Registry) Register(typeName, propName, dataType string, multiValued bool, defaultValue Value) bool {
	reg := Registration{
		TypeName:    typeName,
		Name:        propName,
		DataType:    dataType,
		MultiValued: multiValued,
		Default:     defaultValue,
	}
	td, ext, ok := r.prepare(reg)
	if !ok {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(td, ext)
}

// Replace clears the extension tables of typeNames and then registers regs,
// all under one write lock, so readers see either the old or the new set
// of extensions on those types and never an empty table in between. It
// returns how many registrations were accepted.
func (r *Registry) Replace(typeNames []string, regs []Registration) int {
	type prepared struct {
		td  *TypeDescriptor
		ext Extension
	}
	var batch []prepared
	for _, reg := range regs {
		if td, ext, ok := r.prepare(reg); ok {
			batch = append(batch, prepared{td: td, ext: ext})
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, typeName := range typeNames {
		r.clearLocked(typeName)
	}
	applied := 0
	for _, p := range batch {
		if r.registerLocked(p.td, p.ext) {
			applied++
		}
	}
	return applied
}

func (r *Registry) warn(reg Registration, reason string) {
	r.logger.Warn("extension property ignored",
		"type", reg.TypeName, "property", reg.Name, "data_type", reg.DataType, "reason", reason)
}

// prepare runs the checks that do not depend on the extension tables.
func (r *Registry) prepare(reg Registration) (*TypeDescriptor, Extension, bool) {
	fail := func(reason string) (*TypeDescriptor, Extension, bool) {
		r.warn(reg, reason)
		return nil, Extension{}, false
	}

	td, ok := r.types[reg.TypeName]
	if !ok {
		return fail("unknown type")
	}
	if !td.extensible {
		return fail("type is not extensible")
	}
	if reg.Name == "" {
		return fail("empty property name")
	}
	if !types.IsValidDataType(reg.DataType) {
		return fail("invalid data type")
	}
	if !types.IsScalarDataType(reg.DataType) {
		if _, known := r.types[reg.DataType]; !known {
			return fail("unknown data type")
		}
	}
	if err := r.check(reg.Name, reg.DataType, reg.MultiValued, reg.Default); err != nil {
		return fail("default value does not match data type")
	}
	def := reg.Default
	if reg.MultiValued && !def.IsNull() && def.kind != KindList {
		def = List(def)
	}
	return td, Extension{
		Name:        reg.Name,
		DataType:    reg.DataType,
		MultiValued: reg.MultiValued,
		Default:     def,
	}, true
}

// registerLocked adds ext to td unless the name is taken on td's chain.
// The caller must hold r.mu for writing.
func (r *Registry) registerLocked(td *TypeDescriptor, ext Extension) bool {
	for p := td; p != nil; p = p.parent {
		reason := ""
		if p.Declares(ext.Name) {
			reason = "already declared by " + p.name
		} else if t := r.ext[p.name]; t != nil {
			if _, dup := t.entries[ext.Name]; dup {
				reason = "already registered on " + p.name
			}
		}
		if reason != "" {
			r.warn(Registration{TypeName: td.name, Name: ext.Name, DataType: ext.DataType}, reason)
			return false
		}
	}
	r.ext[td.name].entries[ext.Name] = ext
	r.invalidateLocked(td)
	return true
}

// ClearAll removes every extension property registered on typeName.
// Values already stored on records stay in place. They become visible
// again if the name is registered anew with the same data type and
// cardinality, and are ignored otherwise.
func (r *Registry) ClearAll(typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked(typeName)
}

func (r *Registry) clearLocked(typeName string) {
	td, ok := r.types[typeName]
	if !ok {
		return
	}
	if t := r.ext[typeName]; t != nil {
		t.entries = make(map[string]Extension)
	}
	r.invalidateLocked(td)
}

// NamesFor returns the extension property names registered directly on
// typeName, sorted. The slice is a snapshot.
func (r *Registry) NamesFor(typeName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := r.ext[typeName]
	if t == nil {
		return nil
	}
	return t.names()
}

// Extensions returns the extension properties registered directly on
// typeName, sorted by name.
func (r *Registry) Extensions(typeName string) []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := r.ext[typeName]
	if t == nil {
		return nil
	}
	out := make([]Extension, 0, len(t.entries))
	for _, n := range t.names() {
		out = append(out, t.entries[n])
	}
	return out
}

// Extensible returns the names of the extensible types in declaration
// order.
func (r *Registry) Extensible() []string {
	var out []string
	for _, n := range r.order {
		if r.types[n].extensible {
			out = append(out, n)
		}
	}
	return out
}
