package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

func TestNewRegistryErrors(t *testing.T) {
	tests := []struct {
		name    string
		decls   []Decl
		wantErr error
	}{
		{
			name:    "duplicate type",
			decls:   []Decl{{Name: "A"}, {Name: "A"}},
			wantErr: types.ErrDuplicateType,
		},
		{
			name:    "unknown super type",
			decls:   []Decl{{Name: "A", Super: "Missing"}},
			wantErr: types.ErrUnknownSuperType,
		},
		{
			name:    "inheritance cycle",
			decls:   []Decl{{Name: "A", Super: "B"}, {Name: "B", Super: "A"}},
			wantErr: types.ErrInheritanceCycle,
		},
		{
			name:    "null data type",
			decls:   []Decl{{Name: "A", Properties: []PropertyDecl{Prop("x", "null")}}},
			wantErr: types.ErrInvalidDataType,
		},
		{
			name:    "unknown record data type",
			decls:   []Decl{{Name: "A", Properties: []PropertyDecl{Prop("x", "Nowhere")}}},
			wantErr: types.ErrUnknownType,
		},
		{
			name:    "empty type name",
			decls:   []Decl{{Name: ""}},
			wantErr: types.ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.decls)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewRegistry error = %v, want %v", err, tt.wantErr)
			}
			if reg != nil {
				t.Errorf("NewRegistry returned a registry alongside an error")
			}
		})
	}
}

func TestRegistryDeclarationOrderIndependent(t *testing.T) {
	decls := testDecls()
	reversed := make([]Decl, len(decls))
	for i, d := range decls {
		reversed[len(decls)-1-i] = d
	}

	reg, err := NewRegistry(reversed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Entity", "Party", "Person"}, reg.SuperTypes("Employee"))
}

func TestRegistrySuperAndSubTypes(t *testing.T) {
	reg, _ := newTestRegistry(t)

	assert.Empty(t, reg.SuperTypes("Entity"))
	assert.Equal(t, []string{"Entity", "Party"}, reg.SuperTypes("Group"))
	assert.Equal(t, []string{"Entity", "Party", "Person"}, reg.SuperTypes("Employee"))

	assert.Equal(t, []string{"Employee", "Group", "Party", "Person"}, reg.SubTypes("Entity"))
	assert.Equal(t, []string{"Employee"}, reg.SubTypes("Person"))
	assert.Empty(t, reg.SubTypes("Group"))
	assert.Nil(t, reg.SubTypes("Unknown"))

	assert.True(t, reg.IsSubType("Employee", "Entity"))
	assert.True(t, reg.IsSubType("Employee", "Person"))
	assert.False(t, reg.IsSubType("Employee", "Group"))
	assert.False(t, reg.IsSubType("Employee", "Employee"))
	assert.False(t, reg.IsSubType("Entity", "Entity"))
	assert.False(t, reg.IsSubType("Unknown", "Entity"))
}

func TestRegistryChain(t *testing.T) {
	reg, _ := newTestRegistry(t)

	assert.Equal(t, []string{"Employee", "Person", "Party", "Entity"}, reg.Chain("Employee"))
	assert.Equal(t, []string{"Entity"}, reg.Chain("Entity"))
	assert.Nil(t, reg.Chain("Unknown"))
}

func TestRegistryPropertyNames(t *testing.T) {
	reg, _ := newTestRegistry(t)

	tests := []struct {
		typeName string
		want     []string
	}{
		{"Entity", []string{"name", "tags", "parent", "created"}},
		{"Party", []string{"name", "tags", "parent", "created"}},
		{"Group", []string{"cn", "members", "name", "tags", "parent", "created"}},
		{"Person", []string{"cn", "sn", "photo", "age", "active", "name", "tags", "parent", "created"}},
		{"Employee", []string{"employeeNumber", "name", "cn", "sn", "photo", "age", "active", "tags", "parent", "created"}},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.PropertyNames(tt.typeName))
		})
	}

	assert.Nil(t, reg.PropertyNames("Unknown"))
}

func TestRegistryPropertyNamesSupersetOfSuperType(t *testing.T) {
	reg, _ := newTestRegistry(t)

	for _, typeName := range reg.Types() {
		names := reg.PropertyNames(typeName)
		for _, super := range reg.SuperTypes(typeName) {
			assert.Subset(t, names, reg.PropertyNames(super), "%s should include %s properties", typeName, super)
		}
	}
}

func TestRegistryPropertyNamesReturnsCopy(t *testing.T) {
	reg, _ := newTestRegistry(t)

	names := reg.PropertyNames("Entity")
	names[0] = "mangled"

	assert.Equal(t, "name", reg.PropertyNames("Entity")[0])
}

func TestRegistryMetadata(t *testing.T) {
	reg, _ := newTestRegistry(t)

	dt, ok := reg.DataType("Employee", "cn")
	assert.True(t, ok)
	assert.Equal(t, types.DataTypeString, dt)

	dt, ok = reg.DataType("Group", "members")
	assert.True(t, ok)
	assert.Equal(t, "Entity", dt)

	_, ok = reg.DataType("Group", "sn")
	assert.False(t, ok, "sn belongs to Person, not Group")

	assert.True(t, reg.IsMandatory("Employee", "sn"))
	assert.False(t, reg.IsMandatory("Employee", "employeeNumber"))
	assert.False(t, reg.IsMandatory("Employee", "unknown"))

	assert.False(t, reg.IsPersistentProperty("Group", "parent"))
	assert.True(t, reg.IsPersistentProperty("Group", "cn"))
	assert.True(t, reg.IsPersistentProperty("Group", "tags"))
	assert.False(t, reg.IsPersistentProperty("Group", "unknown"))

	assert.True(t, reg.IsMultiValuedProperty("Employee", "photo"))
	assert.True(t, reg.IsMultiValuedProperty("Employee", "tags"))
	assert.False(t, reg.IsMultiValuedProperty("Employee", "name"))
	assert.False(t, reg.IsMultiValuedProperty("Employee", "unknown"))
}

func TestRegistryNew(t *testing.T) {
	reg, _ := newTestRegistry(t)

	rec, err := reg.New("Group")
	require.NoError(t, err)
	assert.Equal(t, "Group", rec.TypeName())
	assert.Same(t, reg, rec.Registry())

	_, err = reg.New("Nope")
	assert.ErrorIs(t, err, types.ErrUnknownType)

	assert.Panics(t, func() { reg.MustNew("Nope") })
}

func TestDescriptor(t *testing.T) {
	reg, _ := newTestRegistry(t)

	td, ok := reg.Descriptor("Person")
	require.True(t, ok)
	assert.Equal(t, "Person", td.Name())
	assert.Equal(t, "Party", td.Parent())
	assert.True(t, td.IsExtensible())
	assert.True(t, td.Declares("cn"))
	assert.False(t, td.Declares("name"))
	assert.Equal(t, []string{"cn", "sn", "photo", "age", "active"}, td.DeclaredProperties())

	root, _ := reg.Descriptor("Entity")
	assert.Equal(t, "", root.Parent())
	assert.False(t, root.IsExtensible())

	_, ok = reg.Descriptor("Nope")
	assert.False(t, ok)
}
