package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables read by the SQL source, in load order.
var Tables = []string{"students", "courses", "tests", "marks"}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS students (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT,
  name TEXT
);

CREATE TABLE IF NOT EXISTS courses (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT,
  name TEXT,
  teacher TEXT
);

CREATE TABLE IF NOT EXISTS tests (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT,
  course_id TEXT,
  weight TEXT
);

CREATE TABLE IF NOT EXISTS marks (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  test_id TEXT,
  student_id TEXT,
  mark TEXT
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS students (
  seq BIGSERIAL PRIMARY KEY,
  id TEXT,
  name TEXT
);

CREATE TABLE IF NOT EXISTS courses (
  seq BIGSERIAL PRIMARY KEY,
  id TEXT,
  name TEXT,
  teacher TEXT
);

CREATE TABLE IF NOT EXISTS tests (
  seq BIGSERIAL PRIMARY KEY,
  id TEXT,
  course_id TEXT,
  weight TEXT
);

CREATE TABLE IF NOT EXISTS marks (
  seq BIGSERIAL PRIMARY KEY,
  test_id TEXT,
  student_id TEXT,
  mark TEXT
);
`

// InitSchema creates the input tables when they do not exist yet. Values are
// stored as TEXT so they are parsed exactly like CSV fields.
func InitSchema(ctx context.Context, db *sql.DB, driver string) error {
	var schema string
	switch driver {
	case "sqlite":
		schema = schemaSQLite
	case "postgres":
		schema = schemaPostgres
	default:
		return fmt.Errorf("unsupported driver: %s", driver)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

// VerifySchema verifies that all required tables exist
func VerifySchema(ctx context.Context, db *sql.DB, driver string) error {
	var query string
	switch driver {
	case "sqlite":
		query = `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
	case "postgres":
		query = `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = $1
			)`
	default:
		return fmt.Errorf("unsupported driver: %s", driver)
	}

	for _, table := range Tables {
		var exists bool
		if err := db.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("required table %s does not exist", table)
		}
	}
	return nil
}
