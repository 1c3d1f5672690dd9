package types

import "time"

// Scalar data types a property can declare. Any other data type name is
// taken to be the name of a nested record type (for example
// "IdentifierType" or "Entity").
const (
	DataTypeString   = "String"
	DataTypeInteger  = "Integer"
	DataTypeLong     = "Long"
	DataTypeBoolean  = "Boolean"
	DataTypeBinary   = "byte[]"
	DataTypeDateTime = "Date"
)

// scalarDataTypes is the set of recognized scalar data types.
var scalarDataTypes = map[string]bool{
	DataTypeString:   true,
	DataTypeInteger:  true,
	DataTypeLong:     true,
	DataTypeBoolean:  true,
	DataTypeBinary:   true,
	DataTypeDateTime: true,
}

// IsScalarDataType reports whether dt names one of the scalar data types.
func IsScalarDataType(dt string) bool {
	return scalarDataTypes[dt]
}

// IsValidDataType reports whether dt can be used to declare a property.
// Empty strings and the literal "null" are rejected; every other name that
// is not scalar is accepted as a record type reference and resolved later.
func IsValidDataType(dt string) bool {
	if dt == "" || dt == "null" || dt == "NULL" || dt == "Null" {
		return false
	}
	return true
}

// DefaultValue returns the zero value used for a scalar data type when
// converting configuration input: "" for String, 0 for Integer and Long,
// false for Boolean, an empty byte slice for byte[], and the zero time for
// Date. Returns nil and ErrInvalidDataType for record types and unknown
// names.
func DefaultValue(dataType string) (any, error) {
	switch dataType {
	case DataTypeString:
		return "", nil
	case DataTypeInteger, DataTypeLong:
		return int64(0), nil
	case DataTypeBoolean:
		return false, nil
	case DataTypeBinary:
		return []byte{}, nil
	case DataTypeDateTime:
		return time.Time{}, nil
	default:
		return nil, ErrInvalidDataType
	}
}
