package schema

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// Kind identifies which member of the Value union is populated.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindBoolean
	KindBinary
	KindDateTime
	KindRecord
	KindList
)

var kindNames = [...]string{
	KindNull:     "null",
	KindString:   "string",
	KindInteger:  "integer",
	KindBoolean:  "boolean",
	KindBinary:   "binary",
	KindDateTime: "datetime",
	KindRecord:   "record",
	KindList:     "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a property value. The zero Value is null. Values are immutable:
// constructors and accessors copy slices, so a Value can be shared freely.
// Records referenced by a Value are shared, not copied.
type Value struct {
	kind Kind
	str  string
	num  int64
	flag bool
	bin  []byte
	at   time.Time
	rec  *Record
	list []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Integer returns an integer value, compatible with the Integer and Long
// data types.
func Integer(n int64) Value { return Value{kind: KindInteger, num: n} }

// Boolean returns a Boolean value.
func Boolean(b bool) Value { return Value{kind: KindBoolean, flag: b} }

// Binary returns a byte[] value holding a copy of b.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, bin: bytes.Clone(b)}
}

// DateTime returns a Date value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, at: t} }

// RecordRef returns a value referencing a nested record. A nil record
// yields null.
func RecordRef(r *Record) Value {
	if r == nil {
		return Null()
	}
	return Value{kind: KindRecord, rec: r}
}

// List returns a sequence value holding copies of vs. Nested lists are
// flattened.
func List(vs ...Value) Value {
	out := make([]Value, 0, len(vs))
	for _, v := range vs {
		if v.kind == KindList {
			out = append(out, v.list...)
			continue
		}
		out = append(out, v)
	}
	return Value{kind: KindList, list: out}
}

// Strings is shorthand for a list of String values.
func Strings(ss ...string) Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = String(s)
	}
	return Value{kind: KindList, list: out}
}

// Kind reports the populated member.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInteger returns the integer held by v.
func (v Value) AsInteger() (int64, bool) { return v.num, v.kind == KindInteger }

// AsBoolean returns the boolean held by v.
func (v Value) AsBoolean() (bool, bool) { return v.flag, v.kind == KindBoolean }

// AsBinary returns a copy of the bytes held by v.
func (v Value) AsBinary() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	return bytes.Clone(v.bin), true
}

// AsDateTime returns the time held by v.
func (v Value) AsDateTime() (time.Time, bool) { return v.at, v.kind == KindDateTime }

// AsRecord returns the nested record referenced by v.
func (v Value) AsRecord() (*Record, bool) { return v.rec, v.kind == KindRecord }

// AsList returns a copy of the elements of a list value.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out, true
}

// Len returns the number of elements of a list, 0 for null and 1 for any
// other value.
func (v Value) Len() int {
	switch v.kind {
	case KindNull:
		return 0
	case KindList:
		return len(v.list)
	default:
		return 1
	}
}

// TypeName returns the data type name of the runtime value, as used in
// type-mismatch errors. A record reports its own type name.
func (v Value) TypeName() string {
	switch v.kind {
	case KindString:
		return types.DataTypeString
	case KindInteger:
		return types.DataTypeInteger
	case KindBoolean:
		return types.DataTypeBoolean
	case KindBinary:
		return types.DataTypeBinary
	case KindDateTime:
		return types.DataTypeDateTime
	case KindRecord:
		return v.rec.TypeName()
	case KindList:
		return "List"
	default:
		return "null"
	}
}

// Equal reports whether v and o hold the same value. Records compare by
// identity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindInteger:
		return v.num == o.num
	case KindBoolean:
		return v.flag == o.flag
	case KindBinary:
		return bytes.Equal(v.bin, o.bin)
	case KindDateTime:
		return v.at.Equal(o.at)
	case KindRecord:
		return v.rec == o.rec
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface returns v as a plain Go value: string, int64, bool, []byte,
// time.Time, *Record, []any, or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindBoolean:
		return v.flag
	case KindBinary:
		return bytes.Clone(v.bin)
	case KindDateTime:
		return v.at
	case KindRecord:
		return v.rec
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindBoolean:
		return strconv.FormatBool(v.flag)
	case KindBinary:
		return fmt.Sprintf("byte[%d]", len(v.bin))
	case KindDateTime:
		return v.at.Format(time.RFC3339)
	case KindRecord:
		return v.rec.TypeName() + "{...}"
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "null"
}

// elements returns v as a slice of scalars: the elements of a list, nothing
// for null, or v itself.
func (v Value) elements() []Value {
	switch v.kind {
	case KindNull:
		return nil
	case KindList:
		return v.list
	default:
		return []Value{v}
	}
}
