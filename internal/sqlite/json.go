// JSON record structures and the value codec for records.jsonl.
// A record line carries its type name and a properties object; property
// values are decoded against the data types the registry reports, so the
// file stays free of per-value type tags except for nested records.
package sqlite

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// recordJSON represents a record in records.jsonl.
type recordJSON struct {
	RecordID   string                     `json:"record_id"`
	TypeName   string                     `json:"type_name"`
	Properties map[string]json.RawMessage `json:"properties"`
	CreatedAt  string                     `json:"created_at"`
	UpdatedAt  string                     `json:"updated_at"`
}

// nestedJSON represents a nested record value. Type may name a subtype of
// the property's data type; when empty the data type itself is used.
type nestedJSON struct {
	Type       string                     `json:"type,omitempty"`
	Properties map[string]json.RawMessage `json:"properties"`
}

var jsonNull = json.RawMessage("null")

// encodeProperties collects the persistent, explicitly set properties of
// rec. Extension properties reading their registered default are left out
// so a later change of default reaches stored records. seen guards against
// records that reach themselves through persistent properties.
func encodeProperties(rec *schema.Record, seen map[*schema.Record]bool) (map[string]json.RawMessage, error) {
	props := make(map[string]json.RawMessage)
	for _, name := range rec.PropertyNames() {
		if !rec.IsPersistentProperty(name) || !rec.IsSet(name) || rec.IsDefaulted(name) {
			continue
		}
		raw, err := encodeValue(rec.Get(name), seen)
		if err != nil {
			return nil, fmt.Errorf("encoding %s.%s: %w", rec.TypeName(), name, err)
		}
		props[name] = raw
	}
	return props, nil
}

func encodeValue(v schema.Value, seen map[*schema.Record]bool) (json.RawMessage, error) {
	switch v.Kind() {
	case schema.KindNull:
		return jsonNull, nil
	case schema.KindDateTime:
		at, _ := v.AsDateTime()
		return json.Marshal(at.UTC().Format(time.RFC3339Nano))
	case schema.KindRecord:
		nested, _ := v.AsRecord()
		if seen[nested] {
			return nil, fmt.Errorf("record cycle through %s: %w", nested.TypeName(), types.ErrInvalidData)
		}
		seen[nested] = true
		defer delete(seen, nested)
		props, err := encodeProperties(nested, seen)
		if err != nil {
			return nil, err
		}
		return json.Marshal(nestedJSON{Type: nested.TypeName(), Properties: props})
	case schema.KindList:
		elems, _ := v.AsList()
		items := make([]json.RawMessage, len(elems))
		for i, e := range elems {
			raw, err := encodeValue(e, seen)
			if err != nil {
				return nil, err
			}
			items[i] = raw
		}
		return json.Marshal(items)
	default:
		// String, Integer, Boolean and byte[] (base64) marshal directly.
		return json.Marshal(v.Interface())
	}
}

// decodeProperties assigns props to rec. Names the record's type does not
// know are skipped, so files written before an extension was removed still
// load. Extension values that no longer match the extension's current data
// type are skipped for the same reason.
func decodeProperties(reg *schema.Registry, rec *schema.Record, props map[string]json.RawMessage) error {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dt, ok := rec.DataType(name)
		if !ok {
			continue
		}
		err := decodeProperty(reg, rec, name, dt, props[name])
		if err == nil {
			continue
		}
		if rec.IsExtension(name) && (errors.Is(err, types.ErrInvalidData) || errors.Is(err, types.ErrTypeMismatch)) {
			continue
		}
		return fmt.Errorf("decoding %s.%s: %w", rec.TypeName(), name, err)
	}
	return nil
}

func decodeProperty(reg *schema.Registry, rec *schema.Record, name, dataType string, raw json.RawMessage) error {
	if !rec.IsMultiValuedProperty(name) {
		v, err := decodeValue(reg, dataType, raw)
		if err != nil {
			return err
		}
		return rec.Set(name, v)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return types.ErrInvalidData
	}
	vals := make([]schema.Value, 0, len(items))
	for _, item := range items {
		v, err := decodeValue(reg, dataType, item)
		if err != nil {
			return err
		}
		vals = append(vals, v)
	}
	return rec.ReplaceAll(name, vals...)
}

func decodeValue(reg *schema.Registry, dataType string, raw json.RawMessage) (schema.Value, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return schema.Null(), nil
	}
	invalid := func() (schema.Value, error) {
		return schema.Null(), fmt.Errorf("%s value %s: %w", dataType, raw, types.ErrInvalidData)
	}

	switch dataType {
	case types.DataTypeString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return invalid()
		}
		return schema.String(s), nil
	case types.DataTypeInteger, types.DataTypeLong:
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return invalid()
		}
		return schema.Integer(n), nil
	case types.DataTypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return invalid()
		}
		return schema.Boolean(b), nil
	case types.DataTypeBinary:
		var b []byte
		if err := json.Unmarshal(raw, &b); err != nil {
			return invalid()
		}
		return schema.Binary(b), nil
	case types.DataTypeDateTime:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return invalid()
		}
		at, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return invalid()
		}
		return schema.DateTime(at), nil
	}

	var n nestedJSON
	if err := json.Unmarshal(raw, &n); err != nil {
		return invalid()
	}
	typeName := n.Type
	if typeName == "" {
		typeName = dataType
	}
	nested, err := reg.New(typeName)
	if err != nil {
		return schema.Null(), err
	}
	if err := decodeProperties(reg, nested, n.Properties); err != nil {
		return schema.Null(), err
	}
	return schema.RecordRef(nested), nil
}

// encodeRecord renders one records.jsonl line.
func encodeRecord(id string, rec *schema.Record, createdAt, updatedAt string) (recordJSON, error) {
	props, err := encodeProperties(rec, map[*schema.Record]bool{rec: true})
	if err != nil {
		return recordJSON{}, err
	}
	return recordJSON{
		RecordID:   id,
		TypeName:   rec.TypeName(),
		Properties: props,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// decodeRecord rebuilds the record of one records.jsonl line.
func decodeRecord(reg *schema.Registry, r recordJSON) (*schema.Record, error) {
	rec, err := reg.New(r.TypeName)
	if err != nil {
		return nil, err
	}
	if err := decodeProperties(reg, rec, r.Properties); err != nil {
		return nil, err
	}
	return rec, nil
}
