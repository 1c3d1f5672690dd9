package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dirschema/internal/extconfig"
	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/store"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Create, read, update and delete stored records",
	}
	cmd.AddCommand(newRecordCreateCmd(a))
	cmd.AddCommand(newRecordGetCmd(a))
	cmd.AddCommand(newRecordUpdateCmd(a))
	cmd.AddCommand(newRecordListCmd(a))
	cmd.AddCommand(newRecordDeleteCmd(a))
	return cmd
}

// applyAssignments sets every name=value pair on rec, converting the value
// to the property's data type. A repeated name appends to a multi-valued
// property.
func applyAssignments(rec *schema.Record, assignments []string) error {
	for _, arg := range assignments {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid assignment %q (expected name=value)", arg)
		}
		dataType, known := rec.DataType(name)
		if !known {
			return fmt.Errorf("%s.%s: %w", rec.TypeName(), name, types.ErrUnknownProperty)
		}
		v, err := extconfig.Convert(dataType, raw)
		if err != nil {
			if errors.Is(err, types.ErrInvalidDataType) {
				return fmt.Errorf("%s.%s holds %s records and cannot be set from the command line", rec.TypeName(), name, dataType)
			}
			return fmt.Errorf("%s.%s: %w", rec.TypeName(), name, err)
		}
		if err := rec.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// storeError classifies a cupboard error for the exit code.
func storeError(err error) error {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrUnknownType),
		errors.Is(err, fs.ErrNotExist):
		return userError(err)
	}
	return sysError(err)
}

func (a *app) printRecord(cmd *cobra.Command, id string, rec *schema.Record) error {
	return a.print(cmd.OutOrStdout(), viewRecord(id, rec))
}

func newRecordCreateCmd(a *app) *cobra.Command {
	var (
		id         string
		sets       []string
		noValidate bool
	)
	cmd := &cobra.Command{
		Use:   "create <type>",
		Short: "Create a record",
		Long: "Create builds a record of the given type from --set name=value\n" +
			"assignments and stores it. Repeat --set to add values to a\n" +
			"multi-valued property. Mandatory properties must be set unless\n" +
			"--no-validate is given.\n\n" +
			"Example:\n  dirschema record create Group --set cn=admins\n" +
			"  dirschema record create Person --set cn=Ada --set sn=Lovelace --set mail=ada@example.com",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attach()
			if err != nil {
				return err
			}
			defer s.close()

			rec, err := s.reg.New(args[0])
			if err != nil {
				return userError(err)
			}
			if err := applyAssignments(rec, sets); err != nil {
				return userError(err)
			}
			if !noValidate {
				if err := rec.Validate(); err != nil {
					return userError(err)
				}
			}

			savedID, err := s.cupboard.Set(id, rec)
			if err != nil {
				return storeError(fmt.Errorf("create record: %w", err))
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), viewRecord(savedID, rec))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s\n", rec.TypeName(), savedID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record ID (default: generated UUID v7)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "property assignment name=value (repeatable)")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "store the record even if mandatory properties are missing")
	return cmd
}

func newRecordGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attach()
			if err != nil {
				return err
			}
			defer s.close()

			rec, err := s.cupboard.Get(args[0])
			if err != nil {
				return storeError(fmt.Errorf("get record %s: %w", args[0], err))
			}
			return a.printRecord(cmd, args[0], rec)
		},
	}
}

func newRecordUpdateCmd(a *app) *cobra.Command {
	var (
		sets   []string
		unsets []string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change properties of a stored record",
		Long: "Update unsets the --unset properties first, then applies the --set\n" +
			"assignments, and stores the record under the same ID.\n\n" +
			"Example:\n  dirschema record update 0190... --unset mail --set mail=ada@example.org",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attach()
			if err != nil {
				return err
			}
			defer s.close()

			rec, err := s.cupboard.Get(args[0])
			if err != nil {
				return storeError(fmt.Errorf("get record %s: %w", args[0], err))
			}
			for _, name := range unsets {
				if _, known := rec.DataType(name); !known {
					return userError(fmt.Errorf("%s.%s: %w", rec.TypeName(), name, types.ErrUnknownProperty))
				}
				rec.Unset(name)
			}
			if err := applyAssignments(rec, sets); err != nil {
				return userError(err)
			}
			if _, err := s.cupboard.Set(args[0], rec); err != nil {
				return storeError(fmt.Errorf("update record %s: %w", args[0], err))
			}
			return a.printRecord(cmd, args[0], rec)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "property assignment name=value (repeatable)")
	cmd.Flags().StringArrayVar(&unsets, "unset", nil, "property to clear (repeatable)")
	return cmd
}

func newRecordListCmd(a *app) *cobra.Command {
	var (
		typeName string
		subTypes bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Long: "List prints stored records, optionally only those of one type.\n" +
			"With --subtypes, records of every subtype of --type are included.\n\n" +
			"Example:\n  dirschema record list --type Party --subtypes",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subTypes && typeName == "" {
				return userError(fmt.Errorf("--subtypes requires --type"))
			}
			s, err := a.attach()
			if err != nil {
				return err
			}
			defer s.close()

			var entries []store.Entry
			if typeName != "" {
				entries, err = s.cupboard.Fetch(typeName, subTypes)
				if err != nil {
					return storeError(fmt.Errorf("list records: %w", err))
				}
			} else {
				for _, t := range s.reg.Types() {
					got, err := s.cupboard.Fetch(t, false)
					if err != nil {
						return storeError(fmt.Errorf("list records: %w", err))
					}
					entries = append(entries, got...)
				}
			}

			if a.flags.jsonMode {
				views := make([]recordView, 0, len(entries))
				for _, e := range entries {
					views = append(views, viewRecord(e.ID, e.Record))
				}
				return printJSON(cmd.OutOrStdout(), views)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tNAME")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Record.TypeName(), displayName(e.Record))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "only records of this entity type")
	cmd.Flags().BoolVar(&subTypes, "subtypes", false, "include records of subtypes of --type")
	return cmd
}

// displayName picks a human label for a record.
func displayName(rec *schema.Record) string {
	for _, name := range []string{"cn", "uid", "displayName", "principalName"} {
		if _, known := rec.DataType(name); !known || !rec.IsSet(name) {
			continue
		}
		v := rec.Get(name)
		if elems, ok := v.AsList(); ok {
			if len(elems) == 0 {
				continue
			}
			v = elems[0]
		}
		return v.String()
	}
	return ""
}

func newRecordDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attach()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.cupboard.Delete(args[0]); err != nil {
				return storeError(fmt.Errorf("delete record %s: %w", args[0], err))
			}
			if !a.flags.jsonMode {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
		},
	}
}
