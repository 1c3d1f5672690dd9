package cli

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return sysError(err)
	}
	return nil
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return sysError(err)
	}
	if err := enc.Close(); err != nil {
		return sysError(err)
	}
	return nil
}

// print writes v as JSON in --json mode and as YAML otherwise.
func (a *app) print(w io.Writer, v any) error {
	if a.flags.jsonMode {
		return printJSON(w, v)
	}
	return printYAML(w, v)
}

// recordView is the printable form of a record. Nested records omit the ID.
type recordView struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// viewRecord renders the set properties of rec, defaults included.
func viewRecord(id string, rec *schema.Record) recordView {
	props := make(map[string]any)
	for _, name := range rec.PropertyNames() {
		if !rec.IsSet(name) {
			continue
		}
		props[name] = viewValue(rec.Get(name))
	}
	return recordView{ID: id, Type: rec.TypeName(), Properties: props}
}

func viewValue(v schema.Value) any {
	switch v.Kind() {
	case schema.KindBinary:
		b, _ := v.AsBinary()
		return base64.StdEncoding.EncodeToString(b)
	case schema.KindDateTime:
		at, _ := v.AsDateTime()
		return at.UTC().Format(time.RFC3339Nano)
	case schema.KindRecord:
		rec, _ := v.AsRecord()
		return viewRecord("", rec)
	case schema.KindList:
		elems, _ := v.AsList()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = viewValue(e)
		}
		return out
	}
	return v.Interface()
}
