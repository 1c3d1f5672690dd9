package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/store"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// timeLayout keeps a fixed width so timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var _ store.Cupboard = (*Backend)(nil)

func now() string { return time.Now().UTC().Format(timeLayout) }

// Get rebuilds the record stored under id.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) Get(id string) (*schema.Record, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	r, err := b.scanOne(id)
	if err != nil {
		return nil, err
	}
	return decodeRecord(b.reg, r)
}

// Set creates or replaces a record. If id is empty, generates a UUID v7.
// An existing record keeps its creation time.
func (b *Backend) Set(id string, rec *schema.Record) (string, error) {
	if rec == nil {
		return "", types.ErrInvalidData
	}
	if _, ok := b.reg.Descriptor(rec.TypeName()); !ok {
		return "", fmt.Errorf("storing %s: %w", rec.TypeName(), types.ErrUnknownType)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrCupboardDetached
	}

	if id == "" {
		id = generateUUID()
	}
	ts := now()
	createdAt := ts
	if prev, err := b.scanOne(id); err == nil {
		createdAt = prev.CreatedAt
	} else if !errors.Is(err, types.ErrNotFound) {
		return "", err
	}

	line, err := encodeRecord(id, rec, createdAt, ts)
	if err != nil {
		return "", err
	}
	props, err := json.Marshal(line.Properties)
	if err != nil {
		return "", fmt.Errorf("encoding properties: %w", err)
	}

	_, err = b.db.Exec(`
		INSERT INTO records (record_id, type_name, properties, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(record_id) DO UPDATE SET
			type_name = excluded.type_name,
			properties = excluded.properties,
			updated_at = excluded.updated_at`,
		id, line.TypeName, string(props), createdAt, ts)
	if err != nil {
		return "", fmt.Errorf("upserting record: %w", err)
	}

	if err := b.persistLocked(); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrCupboardDetached
	}

	res, err := b.db.Exec("DELETE FROM records WHERE record_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	return b.persistLocked()
}

// Fetch returns the records of typeName, and of its subtypes when
// includeSubTypes is set, oldest first.
func (b *Backend) Fetch(typeName string, includeSubTypes bool) ([]store.Entry, error) {
	if _, ok := b.reg.Descriptor(typeName); !ok {
		return nil, fmt.Errorf("fetching %s: %w", typeName, types.ErrUnknownType)
	}
	names := []string{typeName}
	if includeSubTypes {
		names = append(names, b.reg.SubTypes(typeName)...)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	records, err := b.scanAll("WHERE type_name IN ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}

	entries := make([]store.Entry, 0, len(records))
	for _, r := range records {
		rec, err := decodeRecord(b.reg, r)
		if err != nil {
			return nil, fmt.Errorf("decoding record %s: %w", r.RecordID, err)
		}
		entries = append(entries, store.Entry{ID: r.RecordID, Record: rec})
	}
	return entries, nil
}

// Export writes every record to path as JSONL, atomically.
func (b *Backend) Export(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrCupboardDetached
	}
	records, err := b.scanAll("")
	if err != nil {
		return err
	}
	return writeJSONL(path, records)
}

// Import loads the records of a JSONL file, replacing records with the
// same ID, and returns how many were stored.
func (b *Backend) Import(path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrCupboardDetached
	}

	ts := now()
	for i := range records {
		if records[i].CreatedAt == "" {
			records[i].CreatedAt = ts
		}
		if records[i].UpdatedAt == "" {
			records[i].UpdatedAt = ts
		}
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	n, err := insertRecords(tx, b.reg, records)
	if err != nil {
		return 0, fmt.Errorf("importing %s: %w", path, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import transaction: %w", err)
	}
	if err := b.persistLocked(); err != nil {
		return n, err
	}
	return n, nil
}

// persistLocked rewrites records.jsonl from the database.
// The caller must hold b.mu write lock.
func (b *Backend) persistLocked() error {
	records, err := b.scanAll("")
	if err != nil {
		return fmt.Errorf("reading records for JSONL: %w", err)
	}
	return writeJSONL(b.jsonlPath(), records)
}

const selectRecords = "SELECT record_id, type_name, properties, created_at, updated_at FROM records"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (recordJSON, error) {
	var r recordJSON
	var props string
	if err := row.Scan(&r.RecordID, &r.TypeName, &props, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return recordJSON{}, err
	}
	if err := json.Unmarshal([]byte(props), &r.Properties); err != nil {
		return recordJSON{}, fmt.Errorf("record %s properties: %w", r.RecordID, types.ErrInvalidData)
	}
	return r, nil
}

// scanOne reads one row. The caller must hold b.mu.
func (b *Backend) scanOne(id string) (recordJSON, error) {
	r, err := scanRecord(b.db.QueryRow(selectRecords+" WHERE record_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return recordJSON{}, types.ErrNotFound
	}
	if err != nil {
		return recordJSON{}, fmt.Errorf("reading record %s: %w", id, err)
	}
	return r, nil
}

// scanAll reads the rows matching where, oldest first. The caller must
// hold b.mu.
func (b *Backend) scanAll(where string, args ...any) ([]recordJSON, error) {
	query := selectRecords
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY created_at, record_id"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	defer rows.Close()

	var records []recordJSON
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
