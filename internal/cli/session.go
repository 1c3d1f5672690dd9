package cli

import (
	"fmt"

	"github.com/mesh-intelligence/dirschema/internal/extconfig"
	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/sqlite"
	"github.com/mesh-intelligence/dirschema/pkg/store"
	"github.com/mesh-intelligence/dirschema/pkg/types"
	"github.com/mesh-intelligence/dirschema/pkg/wim"
)

// session is an attached cupboard together with the registry its records
// are built from.
type session struct {
	reg      *schema.Registry
	cupboard store.Cupboard
	config   types.Config
}

func (s *session) close() {
	_ = s.cupboard.Detach()
}

// registry builds the directory type registry and applies the configured
// extension files.
func (a *app) registry() (*schema.Registry, error) {
	reg, err := wim.NewRegistry(schema.WithLogger(a.logger))
	if err != nil {
		return nil, sysError(fmt.Errorf("build registry: %w", err))
	}
	patterns := a.extensionPatterns()
	if len(patterns) == 0 {
		return reg, nil
	}
	exts, err := extconfig.Load(patterns...)
	if err != nil {
		return nil, userError(fmt.Errorf("load extensions: %w", err))
	}
	applied := extconfig.Apply(reg, exts)
	a.logger.Debug("extensions applied", "files", len(patterns), "registered", applied)
	return reg, nil
}

// attach opens the configured cupboard. The caller must call close.
func (a *app) attach() (*session, error) {
	reg, err := a.registry()
	if err != nil {
		return nil, err
	}
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, userError(err)
	}

	var cupboard store.Cupboard
	switch cfg.Backend {
	case types.BackendSQLite:
		cupboard = sqlite.NewBackend(reg)
	}
	if err := cupboard.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach cupboard: %w", err))
	}
	return &session{reg: reg, cupboard: cupboard, config: cfg}, nil
}
