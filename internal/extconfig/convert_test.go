package extconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

func TestConvert(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		dataType string
		raw      any
		want     schema.Value
	}{
		{"nil is null", types.DataTypeString, nil, schema.Null()},
		{"string", types.DataTypeString, "ada", schema.String("ada")},
		{"number as string", types.DataTypeString, 42, schema.String("42")},
		{"integer from int", types.DataTypeInteger, 7, schema.Integer(7)},
		{"integer from text", types.DataTypeInteger, "12", schema.Integer(12)},
		{"long", types.DataTypeLong, int64(1) << 40, schema.Integer(1 << 40)},
		{"boolean from text", types.DataTypeBoolean, "true", schema.Boolean(true)},
		{"boolean", types.DataTypeBoolean, false, schema.Boolean(false)},
		{"binary from text", types.DataTypeBinary, "abc", schema.Binary([]byte("abc"))},
		{"binary from bytes", types.DataTypeBinary, []byte{1, 2}, schema.Binary([]byte{1, 2})},
		{"date from text", types.DataTypeDateTime, "2024-01-02T03:04:05Z", schema.DateTime(at)},
		{"date from time", types.DataTypeDateTime, at, schema.DateTime(at)},
		{"list", types.DataTypeInteger, []any{1, "2"}, schema.List(schema.Integer(1), schema.Integer(2))},
		{"string list", types.DataTypeString, []string{"a", "b"}, schema.Strings("a", "b")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.dataType, tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name     string
		dataType string
		raw      any
		wantErr  error
	}{
		{"not a number", types.DataTypeInteger, "seven", types.ErrInvalidData},
		{"not a boolean", types.DataTypeBoolean, "maybe", types.ErrInvalidData},
		{"not a date", types.DataTypeDateTime, "yesterday", types.ErrInvalidData},
		{"bad list element", types.DataTypeInteger, []any{1, "x"}, types.ErrInvalidData},
		{"record type", "IdentifierType", "x", types.ErrInvalidDataType},
		{"unknown type", "Float", 1.5, types.ErrInvalidDataType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.dataType, tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, got.IsNull())
		})
	}
}
