package schema

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// testDecls is a small hierarchy:
//
//	Entity -> Party -> Group
//	                -> Person -> Employee
//
// Employee redeclares Entity's "name" so two levels own the same name.
func testDecls() []Decl {
	return []Decl{
		{Name: "Entity", TracksUnset: true, Properties: []PropertyDecl{
			Prop("name", types.DataTypeString),
			Prop("tags", types.DataTypeString, Multi),
			Prop("parent", "Entity", Transient),
			Prop("created", types.DataTypeDateTime),
		}},
		{Name: "Party", Super: "Entity"},
		{Name: "Group", Super: "Party", Extensible: true, Properties: []PropertyDecl{
			Prop("cn", types.DataTypeString, Mandatory),
			Prop("members", "Entity", Multi),
		}},
		{Name: "Person", Super: "Party", Extensible: true, Properties: []PropertyDecl{
			Prop("cn", types.DataTypeString, Mandatory),
			Prop("sn", types.DataTypeString, Mandatory),
			Prop("photo", types.DataTypeBinary, Multi),
			Prop("age", types.DataTypeInteger),
			Prop("active", types.DataTypeBoolean),
		}},
		{Name: "Employee", Super: "Person", Properties: []PropertyDecl{
			Prop("employeeNumber", types.DataTypeString),
			Prop("name", types.DataTypeString),
		}},
	}
}

// newTestRegistry builds the test hierarchy with a logger writing to the
// returned buffer.
func newTestRegistry(t *testing.T) (*Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg, err := NewRegistry(testDecls(), WithLogger(logger))
	require.NoError(t, err)
	return reg, &buf
}
