package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

func TestValueKinds(t *testing.T) {
	when := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		v        Value
		kind     Kind
		typeName string
		str      string
	}{
		{"null", Null(), KindNull, "null", "null"},
		{"zero value", Value{}, KindNull, "null", "null"},
		{"string", String("x"), KindString, types.DataTypeString, "x"},
		{"integer", Integer(-4), KindInteger, types.DataTypeInteger, "-4"},
		{"boolean", Boolean(true), KindBoolean, types.DataTypeBoolean, "true"},
		{"binary", Binary([]byte{1, 2}), KindBinary, types.DataTypeBinary, "byte[2]"},
		{"datetime", DateTime(when), KindDateTime, types.DataTypeDateTime, "2020-01-02T03:04:05Z"},
		{"list", Strings("a", "b"), KindList, "List", "[a, b]"},
		{"nil record", RecordRef(nil), KindNull, "null", "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.typeName, tt.v.TypeName())
			assert.Equal(t, tt.str, tt.v.String())
			assert.Equal(t, tt.kind == KindNull, tt.v.IsNull())
		})
	}
}

func TestValueAccessorsRejectOtherKinds(t *testing.T) {
	v := String("x")

	_, ok := v.AsInteger()
	assert.False(t, ok)
	_, ok = v.AsBoolean()
	assert.False(t, ok)
	_, ok = v.AsList()
	assert.False(t, ok)
	_, ok = v.AsRecord()
	assert.False(t, ok)
	_, ok = v.AsBinary()
	assert.False(t, ok)
	_, ok = Integer(1).AsString()
	assert.False(t, ok)
}

func TestListFlattensNestedLists(t *testing.T) {
	v := List(String("a"), Strings("b", "c"), String("d"))
	assert.Equal(t, 4, v.Len())
	assert.True(t, v.Equal(Strings("a", "b", "c", "d")))
	assert.Equal(t, 0, List().Len())
	assert.Equal(t, KindList, List().Kind())
}

func TestValueEqual(t *testing.T) {
	reg, _ := newTestRegistry(t)
	a := reg.MustNew("Person")
	b := reg.MustNew("Person")
	when := time.Now()

	assert.True(t, Null().Equal(Null()))
	assert.True(t, Binary([]byte("ab")).Equal(Binary([]byte("ab"))))
	assert.True(t, DateTime(when).Equal(DateTime(when.In(time.FixedZone("x", 3600)))))
	assert.True(t, RecordRef(a).Equal(RecordRef(a)))
	assert.False(t, RecordRef(a).Equal(RecordRef(b)), "records compare by identity")
	assert.False(t, String("1").Equal(Integer(1)))
	assert.False(t, Strings("a").Equal(Strings("a", "b")))
	assert.False(t, Null().Equal(Strings()))
}

func TestValueInterface(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec := reg.MustNew("Group")

	assert.Nil(t, Null().Interface())
	assert.Equal(t, "x", String("x").Interface())
	assert.Equal(t, int64(3), Integer(3).Interface())
	assert.Equal(t, []byte{7}, Binary([]byte{7}).Interface())
	assert.Same(t, rec, RecordRef(rec).Interface())
	assert.Equal(t, []any{"a", int64(1)}, List(String("a"), Integer(1)).Interface())
	assert.Equal(t, "Group", RecordRef(rec).TypeName())
	assert.Equal(t, "Group{...}", RecordRef(rec).String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
