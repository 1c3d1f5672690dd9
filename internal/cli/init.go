package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dirschema/internal/paths"
)

// initResult is printed by init in JSON mode.
type initResult struct {
	ConfigFile string `json:"config_file"`
	DataDir    string `json:"data_dir"`
	Backend    string `json:"backend"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long: "Create the configuration directory with a default config.yaml,\n" +
			"then create the data directory and initialize the storage backend.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attach()
			if err != nil {
				return err
			}
			s.close()

			res := initResult{
				ConfigFile: filepath.Join(a.configDir, paths.ConfigFileName),
				DataDir:    s.config.DataDir,
				Backend:    s.config.Backend,
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dirschema initialized\nconfig: %s\ndata:   %s\n", res.ConfigFile, res.DataDir)
			return nil
		},
	}
}
