package schema

import (
	"slices"
	"sort"
)

// PropFlag marks property metadata bits.
type PropFlag uint8

// Property flags.
const (
	// Multi marks a multi-valued property.
	Multi PropFlag = 1 << iota
	// Mandatory marks a property that must be set for the record to validate.
	Mandatory
	// Transient marks a property excluded from durable storage.
	Transient
)

// PropertyDecl declares one property introduced by a type.
type PropertyDecl struct {
	Name     string
	DataType string
	Flags    PropFlag
}

// Prop is shorthand for a PropertyDecl.
func Prop(name, dataType string, flags ...PropFlag) PropertyDecl {
	var f PropFlag
	for _, fl := range flags {
		f |= fl
	}
	return PropertyDecl{Name: name, DataType: dataType, Flags: f}
}

// Decl declares an entity type. Super names the immediate parent and is
// empty for a root type.
type Decl struct {
	Name       string
	Super      string
	Properties []PropertyDecl

	// Extensible types accept extension properties through Register.
	Extensible bool
	// TracksUnset types remember which property names were explicitly
	// unset, for Record.IsUnset. Usually only the root type sets this.
	TracksUnset bool
}

// TypeDescriptor is the static metadata of one type. It is immutable once
// the registry that built it has been returned.
type TypeDescriptor struct {
	name        string
	declared    []string
	dataType    map[string]string
	multi       map[string]bool
	mandatory   map[string]bool
	transient   map[string]bool
	superTypes  []string
	subTypes    map[string]bool
	extensible  bool
	tracksUnset bool
	parent      *TypeDescriptor
}

func newDescriptor(d Decl) *TypeDescriptor {
	td := &TypeDescriptor{
		name:        d.Name,
		declared:    make([]string, 0, len(d.Properties)),
		dataType:    make(map[string]string, len(d.Properties)),
		multi:       make(map[string]bool),
		mandatory:   make(map[string]bool),
		transient:   make(map[string]bool),
		subTypes:    make(map[string]bool),
		extensible:  d.Extensible,
		tracksUnset: d.TracksUnset,
	}
	for _, p := range d.Properties {
		if _, dup := td.dataType[p.Name]; dup {
			continue
		}
		td.declared = append(td.declared, p.Name)
		td.dataType[p.Name] = p.DataType
		if p.Flags&Multi != 0 {
			td.multi[p.Name] = true
		}
		if p.Flags&Mandatory != 0 {
			td.mandatory[p.Name] = true
		}
		if p.Flags&Transient != 0 {
			td.transient[p.Name] = true
		}
	}
	return td
}

// Name returns the type name.
func (td *TypeDescriptor) Name() string { return td.name }

// DeclaredProperties returns the properties introduced at this type, in
// declaration order.
func (td *TypeDescriptor) DeclaredProperties() []string {
	return slices.Clone(td.declared)
}

// Declares reports whether the type itself introduces name.
func (td *TypeDescriptor) Declares(name string) bool {
	_, ok := td.dataType[name]
	return ok
}

// SuperTypes returns the ancestors, root first and immediate parent last.
func (td *TypeDescriptor) SuperTypes() []string {
	return slices.Clone(td.superTypes)
}

// Parent returns the immediate super type name, or "" for a root type.
func (td *TypeDescriptor) Parent() string {
	if td.parent == nil {
		return ""
	}
	return td.parent.name
}

// SubTypes returns the direct and transitive sub types, sorted.
func (td *TypeDescriptor) SubTypes() []string {
	out := make([]string, 0, len(td.subTypes))
	for n := range td.subTypes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// IsExtensible reports whether extension properties can be registered.
func (td *TypeDescriptor) IsExtensible() bool { return td.extensible }

func (td *TypeDescriptor) isAncestor(name string) bool {
	return slices.Contains(td.superTypes, name)
}
