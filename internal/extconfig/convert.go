package extconfig

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// Convert turns a loosely typed input (a YAML scalar, a CLI literal) into a
// Value of the given scalar data type. Slices convert element by element
// into a list. nil converts to null. Record data types cannot be converted.
func Convert(dataType string, raw any) (schema.Value, error) {
	if raw == nil {
		return schema.Null(), nil
	}
	switch raw.(type) {
	case []any, []string:
		items, err := cast.ToSliceE(raw)
		if err != nil {
			return schema.Null(), fmt.Errorf("converting %v to %s list: %w", raw, dataType, types.ErrInvalidData)
		}
		vals := make([]schema.Value, 0, len(items))
		for _, item := range items {
			v, err := Convert(dataType, item)
			if err != nil {
				return schema.Null(), err
			}
			vals = append(vals, v)
		}
		return schema.List(vals...), nil
	}

	v, err := convertScalar(dataType, raw)
	if err != nil {
		return schema.Null(), fmt.Errorf("converting %v to %s: %w", raw, dataType, err)
	}
	return v, nil
}

func convertScalar(dataType string, raw any) (schema.Value, error) {
	switch dataType {
	case types.DataTypeString:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return schema.Null(), types.ErrInvalidData
		}
		return schema.String(s), nil
	case types.DataTypeInteger, types.DataTypeLong:
		n, err := cast.ToInt64E(raw)
		if err != nil {
			return schema.Null(), types.ErrInvalidData
		}
		return schema.Integer(n), nil
	case types.DataTypeBoolean:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return schema.Null(), types.ErrInvalidData
		}
		return schema.Boolean(b), nil
	case types.DataTypeBinary:
		if b, ok := raw.([]byte); ok {
			return schema.Binary(b), nil
		}
		s, err := cast.ToStringE(raw)
		if err != nil {
			return schema.Null(), types.ErrInvalidData
		}
		return schema.Binary([]byte(s)), nil
	case types.DataTypeDateTime:
		if at, ok := raw.(time.Time); ok {
			return schema.DateTime(at), nil
		}
		at, err := cast.ToTimeE(raw)
		if err != nil {
			return schema.Null(), types.ErrInvalidData
		}
		return schema.DateTime(at), nil
	}
	return schema.Null(), types.ErrInvalidDataType
}
