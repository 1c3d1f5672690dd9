// JSONL loading for startup and import.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
)

// loadJSONL reads path and inserts its records into the records table.
// Loading is transactional: all succeed or the database remains empty.
func loadJSONL(db *sql.DB, reg *schema.Registry, path string) error {
	records, err := readJSONL(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := insertRecords(tx, reg, records); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords upserts records and returns how many were stored. A record
// whose type is unknown to reg or whose properties do not decode is
// skipped. Unknown property names inside a record are tolerated.
func insertRecords(tx *sql.Tx, reg *schema.Registry, records []recordJSON) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(recordColumns)), ", ")
	insertSQL := fmt.Sprintf(
		"INSERT OR REPLACE INTO records (%s) VALUES (%s)",
		strings.Join(recordColumns, ", "),
		placeholders,
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	loaded := 0
	for _, r := range records {
		if _, err := decodeRecord(reg, r); err != nil {
			continue
		}
		props, err := json.Marshal(r.Properties)
		if err != nil {
			continue
		}
		if r.Properties == nil {
			props = []byte("{}")
		}
		if _, err := stmt.Exec(r.RecordID, r.TypeName, string(props), r.CreatedAt, r.UpdatedAt); err != nil {
			continue
		}
		loaded++
	}
	return loaded, nil
}
