package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every stored record to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attach()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.cupboard.Export(args[0]); err != nil {
				return sysError(fmt.Errorf("export: %w", err))
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"exported": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported records to %s\n", args[0])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load records from a JSONL file",
		Long: "Import reads records written by export, replacing stored records\n" +
			"with the same ID. Malformed lines and records of unknown types are\n" +
			"skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attach()
			if err != nil {
				return err
			}
			defer s.close()

			n, err := s.cupboard.Import(args[0])
			if err != nil {
				return storeError(fmt.Errorf("import: %w", err))
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]int{"imported": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %s\n", n, args[0])
			return nil
		},
	}
}
