package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/dirschema/internal/paths"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyExtensions = "extensions"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# dirschema configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir and DIRSCHEMA_DATA_DIR)
# data_dir:

# Schema extension files. Entries are paths or doublestar patterns,
# relative to this directory unless absolute.
# extensions:
#   - extensions/*.yaml
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in configDir.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, paths.ConfigFileName)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig builds the cupboard configuration from flags, environment
// and config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{
		Backend:        a.config.GetString(cfgKeyBackend),
		DataDir:        dataDir,
		ExtensionFiles: a.extensionPatterns(),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config %s: %w", filepath.Join(a.configDir, paths.ConfigFileName), err)
	}
	return cfg, nil
}

// extensionPatterns returns the configured extension patterns with
// relative entries anchored at the config directory.
func (a *app) extensionPatterns() []string {
	var out []string
	for _, p := range a.config.GetStringSlice(cfgKeyExtensions) {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(a.configDir, p)
		}
		out = append(out, p)
	}
	return out
}
