// Package sqlite provides the public API for the SQLite Cupboard backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/dirschema/internal/sqlite"
	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/store"
)

// NewBackend creates a new SQLite backend storing records of reg.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	reg, _ := wim.NewRegistry()
//	backend := sqlite.NewBackend(reg)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".dirschema",
//	})
//	defer backend.Detach()
func NewBackend(reg *schema.Registry) store.Cupboard {
	return sqlite.NewBackend(reg)
}
