// Package store defines the backend-agnostic interface for persisting
// directory records. Callers attach a Cupboard to a backend, read and write
// records by ID, and detach when done.
package store

import (
	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// Entry pairs a stored record with its ID.
type Entry struct {
	ID     string
	Record *schema.Record
}

// Cupboard stores records built from a schema.Registry. Only properties
// that are persistent and set are written; transient properties and
// extension properties still reading their registered default are not.
type Cupboard interface {
	// Attach connects the Cupboard to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config types.Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, record operations return ErrCupboardDetached.
	Detach() error

	// Get rebuilds the record stored under id.
	// Returns ErrNotFound if no record exists with that ID.
	Get(id string) (*schema.Record, error)

	// Set creates or replaces a record. When id is empty a new UUID v7 is
	// generated. Returns the ID used.
	Set(id string, rec *schema.Record) (string, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(id string) error

	// Fetch returns the records of typeName, oldest first. With
	// includeSubTypes, records of every subtype are returned as well.
	Fetch(typeName string, includeSubTypes bool) ([]Entry, error)

	// Export writes every record to path as JSONL.
	Export(path string) error

	// Import reads JSONL records from path, replacing records with the
	// same ID, and returns how many were loaded. Malformed lines and
	// records of unknown types are skipped.
	Import(path string) (int, error)
}
