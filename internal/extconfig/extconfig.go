// Package extconfig loads schema-extension configuration files and applies
// them to a schema.Registry.
//
// A file lists extension properties and the entity types they extend:
//
//	extensions:
//	  - name: badgeNumber
//	    dataType: Integer
//	    multiValued: false
//	    defaultValue: 0
//	    entityTypes: [PersonAccount]
//
// Files are named directly or through doublestar patterns such as
// "conf/**/*.yaml".
package extconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// Extension is one configured extension property.
type Extension struct {
	Name        string
	DataType    string
	MultiValued bool
	Default     schema.Value
	EntityTypes []string
	Source      string // File the extension was read from.
}

// fileExtension mirrors one entry of the extensions list.
type fileExtension struct {
	Name         string   `mapstructure:"name"`
	DataType     string   `mapstructure:"dataType"`
	MultiValued  bool     `mapstructure:"multiValued"`
	DefaultValue any      `mapstructure:"defaultValue"`
	EntityTypes  []string `mapstructure:"entityTypes"`
}

type fileDoc struct {
	Extensions []fileExtension `mapstructure:"extensions"`
}

func isPattern(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// Expand resolves patterns to a sorted, de-duplicated list of files. A
// plain path must exist; a pattern matching nothing is not an error.
func Expand(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !isPattern(p) {
			if _, err := os.Stat(p); err != nil {
				return nil, fmt.Errorf("extension file %s: %w", p, err)
			}
			p = filepath.Clean(p)
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Load reads every file matched by patterns and returns the configured
// extensions in file order. Default values are converted to the declared
// data type. Whether a data type or target type is acceptable is left to
// the registry, which logs and skips what it cannot take.
func Load(patterns ...string) ([]Extension, error) {
	files, err := Expand(patterns...)
	if err != nil {
		return nil, err
	}

	var out []Extension
	for _, file := range files {
		exts, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		out = append(out, exts...)
	}
	return out, nil
}

func loadFile(path string) ([]Extension, error) {
	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		v.SetConfigType("json")
	default:
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc fileDoc
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	out := make([]Extension, 0, len(doc.Extensions))
	for i, fe := range doc.Extensions {
		if fe.Name == "" {
			return nil, fmt.Errorf("%s: extension %d has no name: %w", path, i, types.ErrInvalidData)
		}
		if len(fe.EntityTypes) == 0 {
			return nil, fmt.Errorf("%s: extension %q has no entityTypes: %w", path, fe.Name, types.ErrInvalidData)
		}
		def, err := Convert(fe.DataType, fe.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("%s: extension %q default: %w", path, fe.Name, err)
		}
		out = append(out, Extension{
			Name:        fe.Name,
			DataType:    fe.DataType,
			MultiValued: fe.MultiValued,
			Default:     def,
			EntityTypes: fe.EntityTypes,
			Source:      path,
		})
	}
	return out, nil
}

// Apply registers exts on reg and returns how many registrations were
// accepted. Rejected registrations are logged by the registry.
func Apply(reg *schema.Registry, exts []Extension) int {
	applied := 0
	for _, r := range Registrations(exts) {
		if reg.Register(r.TypeName, r.Name, r.DataType, r.MultiValued, r.Default) {
			applied++
		}
	}
	return applied
}

// Registrations flattens exts into one registration per target type.
func Registrations(exts []Extension) []schema.Registration {
	var out []schema.Registration
	for _, e := range exts {
		for _, typeName := range e.EntityTypes {
			out = append(out, schema.Registration{
				TypeName:    typeName,
				Name:        e.Name,
				DataType:    e.DataType,
				MultiValued: e.MultiValued,
				Default:     e.Default,
			})
		}
	}
	return out
}

// Types returns the entity types exts target, sorted.
func Types(exts []Extension) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range exts {
		for _, t := range e.EntityTypes {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}
