package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dirschema/internal/extconfig"
	"github.com/mesh-intelligence/dirschema/internal/paths"
	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
	"github.com/mesh-intelligence/dirschema/pkg/wim"
)

type typeSummary struct {
	Name       string   `json:"name" yaml:"name"`
	SuperTypes []string `json:"super_types" yaml:"super_types"`
	Extensible bool     `json:"extensible" yaml:"extensible"`
}

type propertyView struct {
	Name        string `json:"name" yaml:"name"`
	DataType    string `json:"data_type" yaml:"data_type"`
	MultiValued bool   `json:"multi_valued" yaml:"multi_valued"`
	Mandatory   bool   `json:"mandatory" yaml:"mandatory"`
	Persistent  bool   `json:"persistent" yaml:"persistent"`
	ExtendedBy  string `json:"extended_by,omitempty" yaml:"extended_by,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

type typeView struct {
	Name       string         `json:"name" yaml:"name"`
	SuperTypes []string       `json:"super_types" yaml:"super_types"`
	SubTypes   []string       `json:"sub_types" yaml:"sub_types"`
	Extensible bool           `json:"extensible" yaml:"extensible"`
	Properties []propertyView `json:"properties" yaml:"properties"`
}

type extensionView struct {
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name" yaml:"name"`
	DataType    string `json:"data_type" yaml:"data_type"`
	MultiValued bool   `json:"multi_valued" yaml:"multi_valued"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the entity types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			var out []typeSummary
			for _, name := range reg.Types() {
				td, _ := reg.Descriptor(name)
				out = append(out, typeSummary{
					Name:       name,
					SuperTypes: nonNil(td.SuperTypes()),
					Extensible: td.IsExtensible(),
				})
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tSUPER TYPES\tEXTENSIBLE")
			for _, t := range out {
				ext := ""
				if t.Extensible {
					ext = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, strings.Join(t.SuperTypes, " > "), ext)
			}
			return tw.Flush()
		},
	}
}

// describeType collects the metadata of typeName, extensions included.
func describeType(reg *schema.Registry, typeName string) (typeView, error) {
	td, ok := reg.Descriptor(typeName)
	if !ok {
		return typeView{}, fmt.Errorf("%q: %w", typeName, types.ErrUnknownType)
	}

	extOwner := make(map[string]schema.Extension)
	extType := make(map[string]string)
	for _, t := range reg.Chain(typeName) {
		for _, e := range reg.Extensions(t) {
			extOwner[e.Name] = e
			extType[e.Name] = t
		}
	}

	view := typeView{
		Name:       typeName,
		SuperTypes: nonNil(td.SuperTypes()),
		SubTypes:   nonNil(td.SubTypes()),
		Extensible: td.IsExtensible(),
	}
	for _, name := range reg.PropertyNames(typeName) {
		dt, _ := reg.DataType(typeName, name)
		pv := propertyView{
			Name:        name,
			DataType:    dt,
			MultiValued: reg.IsMultiValuedProperty(typeName, name),
			Mandatory:   reg.IsMandatory(typeName, name),
			Persistent:  reg.IsPersistentProperty(typeName, name),
		}
		if e, ok := extOwner[name]; ok {
			pv.ExtendedBy = extType[name]
			if e.HasDefault() {
				pv.Default = viewValue(e.Default)
			}
		}
		view.Properties = append(view.Properties, pv)
	}
	return view, nil
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <type>",
		Short: "Show the properties of an entity type",
		Long: "Describe prints the super and sub types of an entity type and every\n" +
			"property it accepts: declared, inherited and registered extensions.\n\n" +
			"Example:\n  dirschema describe PersonAccount\n  dirschema describe Group --json",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			view, err := describeType(reg, args[0])
			if err != nil {
				return userError(err)
			}
			return a.print(cmd.OutOrStdout(), view)
		},
	}
}

func newExtensionsCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "extensions [type]",
		Short: "List registered extension properties",
		Long: "Extensions lists the extension properties registered from the files\n" +
			"named by the extensions key of config.yaml, optionally for one type.\n" +
			"With --watch it keeps running and prints the list again whenever an\n" +
			"extension file changes.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return a.watchExtensions(cmd, args)
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			return a.printExtensions(cmd, reg, args)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload and print on every extension file change")
	return cmd
}

func (a *app) printExtensions(cmd *cobra.Command, reg *schema.Registry, args []string) error {
	targets := reg.Extensible()
	if len(args) == 1 {
		if _, ok := reg.Descriptor(args[0]); !ok {
			return userError(fmt.Errorf("%q: %w", args[0], types.ErrUnknownType))
		}
		targets = []string{args[0]}
	}

	out := []extensionView{}
	for _, t := range targets {
		for _, e := range reg.Extensions(t) {
			ev := extensionView{Type: t, Name: e.Name, DataType: e.DataType, MultiValued: e.MultiValued}
			if e.HasDefault() {
				ev.Default = viewValue(e.Default)
			}
			out = append(out, ev)
		}
	}
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), out)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tPROPERTY\tDATA TYPE\tMULTI\tDEFAULT")
	for _, e := range out {
		multi, def := "", ""
		if e.MultiValued {
			multi = "yes"
		}
		if e.Default != nil {
			def = fmt.Sprint(e.Default)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Type, e.Name, e.DataType, multi, def)
	}
	return tw.Flush()
}

// watchExtensions reloads the extension files on change until interrupted.
func (a *app) watchExtensions(cmd *cobra.Command, args []string) error {
	patterns := a.extensionPatterns()
	if len(patterns) == 0 {
		return userError(fmt.Errorf("no extension files configured in %s", filepath.Join(a.configDir, paths.ConfigFileName)))
	}
	reg, err := wim.NewRegistry(schema.WithLogger(a.logger))
	if err != nil {
		return sysError(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = extconfig.Watch(ctx, reg, patterns, a.logger,
		extconfig.OnReload(func(applied int, err error) {
			if err != nil {
				return
			}
			_ = a.printExtensions(cmd, reg, args)
		}),
	)
	if err != nil {
		return sysError(fmt.Errorf("watch extensions: %w", err))
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
