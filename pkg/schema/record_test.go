package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

func TestRecordSingleValuedLifecycle(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Person")

	assert.False(t, rec.IsSet("cn"))
	assert.True(t, rec.Get("cn").IsNull())

	require.NoError(t, rec.Set("cn", String("Ada Lovelace")))
	assert.True(t, rec.IsSet("cn"))
	got, ok := rec.Get("cn").AsString()
	assert.True(t, ok)
	assert.Equal(t, "Ada Lovelace", got)

	require.NoError(t, rec.Set("cn", String("Ada King")))
	assert.True(t, rec.Get("cn").Equal(String("Ada King")), "single values are overwritten")

	rec.Unset("cn")
	assert.False(t, rec.IsSet("cn"))
	assert.True(t, rec.Get("cn").IsNull())

	require.NoError(t, rec.Set("age", Integer(36)))
	require.NoError(t, rec.Set("age", Null()))
	assert.False(t, rec.IsSet("age"), "null clears a single value")
}

func TestRecordScalarKinds(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Person")
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, rec.Set("age", Integer(36)))
	require.NoError(t, rec.Set("active", Boolean(true)))
	require.NoError(t, rec.Set("created", DateTime(when)))

	n, _ := rec.Get("age").AsInteger()
	assert.Equal(t, int64(36), n)
	b, _ := rec.Get("active").AsBoolean()
	assert.True(t, b)
	at, _ := rec.Get("created").AsDateTime()
	assert.True(t, when.Equal(at))
}

func TestRecordMultiValued(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Person")

	fresh := rec.Get("tags")
	assert.Equal(t, KindList, fresh.Kind(), "multi-valued properties are never null")
	assert.Equal(t, 0, fresh.Len())
	assert.False(t, rec.IsSet("tags"))

	require.NoError(t, rec.Set("tags", String("a")))
	require.NoError(t, rec.Set("tags", String("b")))
	require.NoError(t, rec.Set("tags", Strings("c", "d")))
	assert.True(t, rec.Get("tags").Equal(Strings("a", "b", "c", "d")))
	assert.True(t, rec.IsSet("tags"))

	require.NoError(t, rec.Set("tags", Null()))
	assert.Equal(t, 4, rec.Get("tags").Len(), "null leaves a sequence alone")

	rec.Unset("tags")
	empty := rec.Get("tags")
	assert.Equal(t, KindList, empty.Kind())
	assert.Equal(t, 0, empty.Len())
	assert.False(t, rec.IsSet("tags"))
}

func TestRecordGetReturnsCopy(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Person")
	require.NoError(t, rec.Set("tags", Strings("a", "b")))

	list, ok := rec.Get("tags").AsList()
	require.True(t, ok)
	list[0] = String("mangled")

	assert.True(t, rec.Get("tags").Equal(Strings("a", "b")))

	raw := []byte{1, 2, 3}
	require.NoError(t, rec.Set("photo", Binary(raw)))
	raw[0] = 9
	photos, _ := rec.Get("photo").AsList()
	got, _ := photos[0].AsBinary()
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestRecordAddRemoveReplace(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Group")

	require.NoError(t, rec.Add("tags", String("x"), String("y"), String("x")))
	assert.True(t, rec.Get("tags").Equal(Strings("x", "y", "x")))

	removed, err := rec.Remove("tags", String("x"))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.True(t, rec.Get("tags").Equal(Strings("y", "x")), "only the first occurrence goes")

	removed, err = rec.Remove("tags", String("missing"))
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, rec.ReplaceAll("tags", String("z")))
	assert.True(t, rec.Get("tags").Equal(Strings("z")))

	err = rec.Add("tags", Integer(1))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.True(t, rec.Get("tags").Equal(Strings("z")))
}

func TestRecordMultiValuedOperationErrors(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Group")

	tests := []struct {
		name    string
		op      func() error
		wantErr error
	}{
		{"add single-valued", func() error { return rec.Add("cn", String("x")) }, types.ErrNotMultiValued},
		{"replace single-valued", func() error { return rec.ReplaceAll("cn") }, types.ErrNotMultiValued},
		{"remove single-valued", func() error { _, err := rec.Remove("cn", String("x")); return err }, types.ErrNotMultiValued},
		{"add unknown", func() error { return rec.Add("nope", String("x")) }, types.ErrUnknownProperty},
		{"remove unknown", func() error { _, err := rec.Remove("nope", String("x")); return err }, types.ErrUnknownProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.op(), tt.wantErr)
		})
	}
}

func TestRecordUnknownNamesAreSilent(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Group")

	require.NoError(t, rec.Set("sn", String("not a group property")))
	assert.True(t, rec.Get("sn").IsNull())
	assert.False(t, rec.IsSet("sn"))

	rec.Unset("sn")
	assert.False(t, rec.IsUnset("sn"), "unknown names are not tracked")
}

func TestRecordDeclaredTypeMismatch(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Person")
	require.NoError(t, rec.Set("age", Integer(10)))

	tests := []struct {
		name string
		prop string
		v    Value
	}{
		{"string into integer", "age", String("ten")},
		{"list into single", "age", List(Integer(1))},
		{"integer into multi string", "tags", Integer(3)},
		{"mixed list", "tags", List(String("ok"), Boolean(true))},
		{"bytes into string", "cn", Binary([]byte("cn"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rec.Set(tt.prop, tt.v)
			assert.ErrorIs(t, err, types.ErrTypeMismatch)
		})
	}

	assert.True(t, rec.Get("age").Equal(Integer(10)))
	assert.Equal(t, 0, rec.Get("tags").Len())
	assert.False(t, rec.IsSet("cn"))
}

func TestRecordNestedRecordsAcceptSubTypes(t *testing.T) {
	reg, _ := newTestRegistry(t)

	group := reg.MustNew("Group")
	alice := reg.MustNew("Person")
	bob := reg.MustNew("Employee")
	require.NoError(t, alice.Set("cn", String("alice")))
	require.NoError(t, bob.Set("cn", String("bob")))

	require.NoError(t, group.Set("members", List(RecordRef(alice), RecordRef(bob))))
	require.NoError(t, group.Set("parent", RecordRef(reg.MustNew("Group"))))

	members, ok := group.Get("members").AsList()
	require.True(t, ok)
	require.Len(t, members, 2)
	first, _ := members[0].AsRecord()
	assert.Same(t, alice, first)
	assert.Equal(t, "Employee", members[1].TypeName())

	removed, err := group.Remove("members", RecordRef(alice))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, group.Get("members").Len())
}

func TestRecordIsUnset(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Person")

	assert.False(t, rec.IsUnset("cn"))

	require.NoError(t, rec.Set("cn", String("x")))
	rec.Unset("cn")
	assert.True(t, rec.IsUnset("cn"))

	require.NoError(t, rec.Set("cn", String("y")))
	assert.False(t, rec.IsUnset("cn"), "setting again clears the marker")

	rec.Unset("tags")
	assert.True(t, rec.IsUnset("tags"))
	require.NoError(t, rec.Add("tags", String("t")))
	assert.False(t, rec.IsUnset("tags"))
}

func TestRecordRedeclaredPropertyFiresAtEveryLevel(t *testing.T) {
	reg, _ := newTestRegistry(t)
	emp := reg.MustNew("Employee")

	require.NoError(t, emp.Set("name", String("E. Mployee")))
	assert.True(t, emp.Get("name").Equal(String("E. Mployee")))

	slots := emp.owners("name")
	require.Len(t, slots, 2, "Employee and Entity both own name")
	for _, s := range slots {
		assert.True(t, s.get(emp).Equal(String("E. Mployee")), "level %s", s.key.owner.Name())
	}

	emp.Unset("name")
	for _, s := range slots {
		assert.True(t, s.get(emp).IsNull(), "level %s", s.key.owner.Name())
	}

	err := emp.Set("name", Integer(1))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.False(t, emp.IsSet("name"))
}

func TestRecordValidate(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Person")

	err := rec.Validate()
	require.ErrorIs(t, err, types.ErrMandatoryMissing)
	assert.Contains(t, err.Error(), "Person.cn")

	require.NoError(t, rec.Set("cn", String("c")))
	err = rec.Validate()
	require.ErrorIs(t, err, types.ErrMandatoryMissing)
	assert.Contains(t, err.Error(), "Person.sn")

	require.NoError(t, rec.Set("sn", String("s")))
	assert.NoError(t, rec.Validate())

	assert.NoError(t, reg.MustNew("Entity").Validate(), "nothing mandatory on Entity")
}

func TestRecordTypeIntrospection(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Group")

	assert.Equal(t, "Group", rec.TypeName())
	assert.Equal(t, []string{"Entity", "Party"}, rec.SuperTypes())
	assert.True(t, rec.IsSubType("Entity"))
	assert.True(t, rec.IsSubType("Party"))
	assert.False(t, rec.IsSubType("Person"))
	assert.False(t, rec.IsSubType("Group"))
	assert.Equal(t, reg.PropertyNames("Group"), rec.PropertyNames())
	assert.True(t, rec.IsMandatory("cn"))
	assert.False(t, rec.IsPersistentProperty("parent"))
	assert.True(t, rec.IsMultiValuedProperty("members"))
	assert.Empty(t, rec.ExtendedPropertyNames())
}
