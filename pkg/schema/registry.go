package schema

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// options holds the configuration for NewRegistry.
type options struct {
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger used for registration warnings. A nil logger
// falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Registry holds the descriptor table for a set of types together with
// their extension tables. Descriptors and handler chains are built once in
// NewRegistry and never change afterwards, so reads of them take no lock.
// The extension tables and the cached property-name lists are guarded by mu.
type Registry struct {
	logger   *slog.Logger
	types    map[string]*TypeDescriptor
	order    []string
	handlers map[string]*handler

	mu    sync.RWMutex
	ext   map[string]*extensionTable
	names map[string][]string
}

// NewRegistry builds a registry from decls. Declarations may appear in any
// order. It fails if a type is declared twice, names an unknown super type,
// takes part in an inheritance cycle, or declares a property whose data
// type is neither scalar nor a declared type.
func NewRegistry(decls []Decl, opts ...Option) (*Registry, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	r := &Registry{
		logger:   o.logger,
		types:    make(map[string]*TypeDescriptor, len(decls)),
		handlers: make(map[string]*handler, len(decls)),
		ext:      make(map[string]*extensionTable),
		names:    make(map[string][]string),
	}

	for _, d := range decls {
		if d.Name == "" {
			return nil, fmt.Errorf("declaring type with empty name: %w", types.ErrUnknownType)
		}
		if _, dup := r.types[d.Name]; dup {
			return nil, fmt.Errorf("declaring %s: %w", d.Name, types.ErrDuplicateType)
		}
		r.types[d.Name] = newDescriptor(d)
		r.order = append(r.order, d.Name)
	}

	for _, d := range decls {
		if d.Super == "" {
			continue
		}
		parent, ok := r.types[d.Super]
		if !ok {
			return nil, fmt.Errorf("%s extends %s: %w", d.Name, d.Super, types.ErrUnknownSuperType)
		}
		r.types[d.Name].parent = parent
	}

	for _, name := range r.order {
		td := r.types[name]
		seen := map[string]bool{name: true}
		var chain []string
		for p := td.parent; p != nil; p = p.parent {
			if seen[p.name] {
				return nil, fmt.Errorf("resolving %s: %w", name, types.ErrInheritanceCycle)
			}
			seen[p.name] = true
			chain = append(chain, p.name)
		}
		slices.Reverse(chain)
		td.superTypes = chain
		for _, anc := range chain {
			r.types[anc].subTypes[name] = true
		}
	}

	for _, name := range r.order {
		td := r.types[name]
		for _, prop := range td.declared {
			dt := td.dataType[prop]
			if !types.IsValidDataType(dt) {
				return nil, fmt.Errorf("%s.%s: %w", name, prop, types.ErrInvalidDataType)
			}
			if !types.IsScalarDataType(dt) {
				if _, ok := r.types[dt]; !ok {
					return nil, fmt.Errorf("%s.%s references %s: %w", name, prop, dt, types.ErrUnknownType)
				}
			}
		}
	}

	for _, name := range r.order {
		r.buildHandler(r.types[name])
		if r.types[name].extensible {
			r.ext[name] = newExtensionTable()
		}
	}
	return r, nil
}

func (r *Registry) buildHandler(td *TypeDescriptor) *handler {
	if h, ok := r.handlers[td.name]; ok {
		return h
	}
	h := &handler{desc: td}
	if td.parent != nil {
		h.parent = r.buildHandler(td.parent)
	}
	r.handlers[td.name] = h
	return h
}

// Types returns every type name in declaration order.
func (r *Registry) Types() []string {
	return slices.Clone(r.order)
}

// Descriptor returns the static metadata of a type.
func (r *Registry) Descriptor(typeName string) (*TypeDescriptor, bool) {
	td, ok := r.types[typeName]
	return td, ok
}

// New returns an empty record of the given type.
func (r *Registry) New(typeName string) (*Record, error) {
	h, ok := r.handlers[typeName]
	if !ok {
		return nil, fmt.Errorf("creating %q: %w", typeName, types.ErrUnknownType)
	}
	return newRecord(r, h), nil
}

// MustNew is like New but panics on an unknown type name. It is meant for
// schema declarations known at compile time.
func (r *Registry) MustNew(typeName string) *Record {
	rec, err := r.New(typeName)
	if err != nil {
		panic(err)
	}
	return rec
}

// Chain returns the delegation chain of a type, most-derived first.
func (r *Registry) Chain(typeName string) []string {
	var out []string
	for h := r.handlers[typeName]; h != nil; h = h.parent {
		out = append(out, h.desc.name)
	}
	return out
}

// SuperTypes returns the ancestors of a type, root first.
func (r *Registry) SuperTypes(typeName string) []string {
	td, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return td.SuperTypes()
}

// IsSubType reports whether candidateSuper is an ancestor of typeName.
func (r *Registry) IsSubType(typeName, candidateSuper string) bool {
	td, ok := r.types[typeName]
	if !ok {
		return false
	}
	return td.isAncestor(candidateSuper)
}

// SubTypes returns the direct and transitive sub types of a type, sorted.
func (r *Registry) SubTypes(typeName string) []string {
	td, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return td.SubTypes()
}

// PropertyNames returns the properties of a type: its declared properties,
// then its registered extension properties, then the property names of its
// super type. Each name appears once. The list is cached until an
// extension table on the type or one of its ancestors changes.
func (r *Registry) PropertyNames(typeName string) []string {
	td, ok := r.types[typeName]
	if !ok {
		return nil
	}

	r.mu.RLock()
	names, cached := r.names[typeName]
	r.mu.RUnlock()
	if cached {
		return slices.Clone(names)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.propertyNamesLocked(td))
}

// propertyNamesLocked computes and caches the property names of td.
// The caller must hold r.mu for writing.
func (r *Registry) propertyNamesLocked(td *TypeDescriptor) []string {
	if names, ok := r.names[td.name]; ok {
		return names
	}
	names := slices.Clone(td.declared)
	if t := r.ext[td.name]; t != nil {
		names = append(names, t.names()...)
	}
	if td.parent != nil {
		names = append(names, r.propertyNamesLocked(td.parent)...)
	}

	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	r.names[td.name] = out
	return out
}

// invalidateLocked drops the cached property names of typeName and of all
// its sub types. The caller must hold r.mu for writing.
func (r *Registry) invalidateLocked(td *TypeDescriptor) {
	delete(r.names, td.name)
	for sub := range td.subTypes {
		delete(r.names, sub)
	}
}

// DataType returns the data type of a property of typeName, looking at
// the type's own declarations, then its extension table, then its super
// type.
func (r *Registry) DataType(typeName, prop string) (string, bool) {
	for h := r.handlers[typeName]; h != nil; h = h.parent {
		if s, ok := h.resolve(r, prop); ok {
			return s.dataType, true
		}
	}
	return "", false
}

// IsMandatory reports whether prop must be set on records of typeName.
// Extension properties are never mandatory.
func (r *Registry) IsMandatory(typeName, prop string) bool {
	for h := r.handlers[typeName]; h != nil; h = h.parent {
		if s, ok := h.resolve(r, prop); ok {
			return !s.ext && h.desc.mandatory[prop]
		}
	}
	return false
}

// IsPersistentProperty reports whether prop is stored durably. Extension
// properties are always persistent. Unknown names are not.
func (r *Registry) IsPersistentProperty(typeName, prop string) bool {
	for h := r.handlers[typeName]; h != nil; h = h.parent {
		if s, ok := h.resolve(r, prop); ok {
			return s.ext || !h.desc.transient[prop]
		}
	}
	return false
}

// IsExtension reports whether prop resolves to an extension property on the
// chain of typeName.
func (r *Registry) IsExtension(typeName, prop string) bool {
	for h := r.handlers[typeName]; h != nil; h = h.parent {
		if s, ok := h.resolve(r, prop); ok {
			return s.ext
		}
	}
	return false
}

// IsMultiValuedProperty reports whether prop is multi-valued at any level
// of the chain of typeName.
func (r *Registry) IsMultiValuedProperty(typeName, prop string) bool {
	for h := r.handlers[typeName]; h != nil; h = h.parent {
		if s, ok := h.resolve(r, prop); ok && s.multi {
			return true
		}
	}
	return false
}

// accepts reports whether v can be stored in a property of dataType.
// Records are accepted for their own type and for any of its ancestors.
func (r *Registry) accepts(dataType string, v Value) bool {
	switch v.kind {
	case KindString:
		return dataType == types.DataTypeString
	case KindInteger:
		return dataType == types.DataTypeInteger || dataType == types.DataTypeLong
	case KindBoolean:
		return dataType == types.DataTypeBoolean
	case KindBinary:
		return dataType == types.DataTypeBinary
	case KindDateTime:
		return dataType == types.DataTypeDateTime
	case KindRecord:
		rt := v.rec.TypeName()
		return rt == dataType || r.IsSubType(rt, dataType)
	}
	return false
}

// check validates v against a property's data type and multiplicity.
// Null always passes. A list passes only for multi-valued properties and
// only if every element passes.
func (r *Registry) check(prop, dataType string, multi bool, v Value) error {
	switch v.kind {
	case KindNull:
		return nil
	case KindList:
		if !multi {
			return &TypeMismatchError{Property: prop, Got: v.TypeName(), Want: dataType}
		}
		for _, e := range v.list {
			if !r.accepts(dataType, e) {
				return &TypeMismatchError{Property: prop, Got: e.TypeName(), Want: dataType}
			}
		}
		return nil
	}
	if !r.accepts(dataType, v) {
		return &TypeMismatchError{Property: prop, Got: v.TypeName(), Want: dataType}
	}
	return nil
}
