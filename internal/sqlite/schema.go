package sqlite

// Schema DDL for the playbook database. The document table holds exactly one
// row; pattern order is preserved through the seq column.
const (
	createDocument = `CREATE TABLE IF NOT EXISTS document (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    version INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    task_successes INTEGER NOT NULL DEFAULT 0,
    task_failures INTEGER NOT NULL DEFAULT 0,
    last_success TEXT,
    last_failure TEXT
);`

	createPatterns = `CREATE TABLE IF NOT EXISTS patterns (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    pattern_id TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL,
    content TEXT NOT NULL,
    endpoint TEXT,
    created_at TEXT NOT NULL,
    uses INTEGER NOT NULL DEFAULT 0,
    successes INTEGER NOT NULL DEFAULT 0,
    failures INTEGER NOT NULL DEFAULT 0,
    last_used TEXT
);`
)

// schemaStatements lists the DDL run on every open. All statements are
// idempotent.
var schemaStatements = []string{
	createDocument,
	createPatterns,
}
