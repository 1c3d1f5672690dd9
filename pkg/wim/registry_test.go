package wim

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

func newRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := NewRegistry(schema.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return reg
}

func TestDeclarationsBuild(t *testing.T) {
	reg := newRegistry(t)

	assert.Len(t, reg.Types(), len(Decls()))
	assert.Equal(t, []string{TypePerson, TypePersonAccount, TypeGroup, TypeOrgContainer}, reg.Extensible())
}

func TestHierarchy(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		typeName string
		want     []string
	}{
		{TypeEntity, []string{}},
		{TypeParty, []string{TypeEntity, TypeRolePlayer}},
		{TypePerson, []string{TypeEntity, TypeRolePlayer, TypeParty}},
		{TypePersonAccount, []string{TypeEntity, TypeRolePlayer, TypeParty, TypeLoginAccount}},
		{TypeGroup, []string{TypeEntity, TypeRolePlayer, TypeParty}},
		{TypeContainer, []string{TypeEntity}},
		{TypeCountry, []string{TypeEntity, TypeGeographicLocation}},
		{TypePartyRole, []string{TypeEntity, TypeRolePlayer}},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			got := reg.SuperTypes(tt.typeName)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupMembership(t *testing.T) {
	reg := newRegistry(t)

	group := reg.MustNew(TypeGroup)
	require.NoError(t, group.Set("cn", schema.String("Engineering")))
	assert.True(t, group.Get("cn").Equal(schema.String("Engineering")))

	personA := reg.MustNew(TypePerson)
	personB := reg.MustNew(TypePersonAccount)
	require.NoError(t, group.Set("members", schema.List(schema.RecordRef(personA), schema.RecordRef(personB))))

	members, ok := group.Get("members").AsList()
	require.True(t, ok)
	require.Len(t, members, 2)
	a, _ := members[0].AsRecord()
	b, _ := members[1].AsRecord()
	assert.Same(t, personA, a)
	assert.Same(t, personB, b)

	assert.True(t, group.IsSubType(TypeEntity))
	assert.True(t, group.IsSubType(TypeParty))
	assert.False(t, group.IsSubType(TypePerson))

	err := group.Set("members", schema.String("not a record"))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.Equal(t, 2, group.Get("members").Len())
}

func TestPersonAccount(t *testing.T) {
	reg := newRegistry(t)
	acct := reg.MustNew(TypePersonAccount)

	require.NoError(t, acct.Set("uid", schema.String("jdoe")))
	require.NoError(t, acct.Set("cn", schema.String("John Doe")))
	require.NoError(t, acct.Set("sn", schema.String("Doe")))
	require.NoError(t, acct.Set("realm", schema.String("default")))
	require.NoError(t, acct.Set("mail", schema.String("jdoe@example.com")))
	require.NoError(t, acct.Set("telephoneNumber", schema.String("555-0100")))
	require.NoError(t, acct.Set("telephoneNumber", schema.String("555-0101")))

	assert.True(t, acct.Get("telephoneNumber").Equal(schema.Strings("555-0100", "555-0101")))
	assert.NoError(t, acct.Validate())

	assert.True(t, acct.IsMandatory("cn"))
	assert.False(t, acct.IsPersistentProperty("principalName"))
	assert.False(t, acct.IsPersistentProperty("parent"))
	assert.True(t, acct.IsPersistentProperty("password"))
	assert.True(t, acct.IsMultiValuedProperty("certificate"))

	dt, ok := acct.DataType("createTimestamp")
	assert.True(t, ok)
	assert.Equal(t, types.DataTypeDateTime, dt)

	names := acct.PropertyNames()
	assert.Equal(t, "uid", names[0], "own properties come first")
	assert.Contains(t, names, "realm")
	assert.Contains(t, names, "identifier")
	assert.Contains(t, names, "partyRoles")
}

func TestNestedRecordTypes(t *testing.T) {
	reg := newRegistry(t)
	person := reg.MustNew(TypePerson)

	addr := reg.MustNew(TypeAddress)
	require.NoError(t, addr.Set("city", schema.String("Armonk")))
	require.NoError(t, person.Set("homeAddress", schema.RecordRef(addr)))

	mgr := reg.MustNew(TypeIdentifier)
	require.NoError(t, mgr.Set("uniqueName", schema.String("uid=boss")))
	require.NoError(t, person.Add("manager", schema.RecordRef(mgr)))

	got, ok := person.Get("homeAddress").AsRecord()
	require.True(t, ok)
	assert.True(t, got.Get("city").Equal(schema.String("Armonk")))
	assert.Equal(t, 1, person.Get("manager").Len())

	err := person.Set("homeAddress", schema.RecordRef(mgr))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestPersonExtension(t *testing.T) {
	reg := newRegistry(t)

	require.True(t, reg.Register(TypePerson, "badgeNumber", types.DataTypeInteger, false, schema.Integer(0)))
	assert.False(t, reg.Register(TypeGroup, "cn", types.DataTypeString, false, schema.Null()))
	assert.False(t, reg.Register(TypeEntity, "x", types.DataTypeString, false, schema.Null()))

	p := reg.MustNew(TypePerson)
	assert.True(t, p.Get("badgeNumber").Equal(schema.Integer(0)))
	assert.Contains(t, p.PropertyNames(), "badgeNumber")
	assert.NotContains(t, reg.PropertyNames(TypePersonAccount), "badgeNumber", "PersonAccount does not extend Person")
}
