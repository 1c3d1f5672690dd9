package sqlite

// Schema DDL.
const (
	createRecords = `CREATE TABLE records (
    record_id TEXT PRIMARY KEY,
    type_name TEXT NOT NULL,
    properties TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	idxRecordsType = `CREATE INDEX idx_records_type ON records(type_name);`
)

// schemaDDL lists the statements run on a fresh database, in order.
var schemaDDL = []string{
	createRecords,
	idxRecordsType,
}

// recordColumns lists the columns of the records table in insert order.
var recordColumns = []string{"record_id", "type_name", "properties", "created_at", "updated_at"}

// recordsJSONL is the source-of-truth file in DataDir.
const recordsJSONL = "records.jsonl"

// databaseFile is the SQLite query cache rebuilt on every Attach.
const databaseFile = "dirschema.db"
