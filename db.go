package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"  // driver: postgres
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/nonsonwune/markbook/migrations"
)

const defaultSQLiteFile = "file:markbook.db"

// openDB connects to the database holding the input tables and checks that
// all four tables are there. The default sqlite database is opened read-only.
func openDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "sqlite" && dsn == "" {
		dsn = defaultSQLiteFile + "?mode=ro"
	}
	db, err := connect(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrations.VerifySchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openDBForImport connects for writing and creates the input tables when
// they are missing.
func openDBForImport(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "sqlite" && dsn == "" {
		dsn = defaultSQLiteFile
	}
	db, err := connect(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrations.InitSchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func connect(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "sqlite":
	case "postgres":
		if dsn == "" {
			return nil, errors.New("MARKBOOK_DB_DSN is required for postgres")
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}
