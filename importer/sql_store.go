package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// storeOrder is the order tables are copied in, matching the load order.
var storeOrder = []Table{StudentsTable, CoursesTable, TestsTable, MarksTable}

// Store copies the four tables from src into db, replacing whatever the
// tables held before. Values are stored verbatim; only rows with the wrong
// field count are left out, since the loader would skip them anyway. The
// copy runs in one transaction and the tables must already exist.
func Store(ctx context.Context, db *sql.DB, driver string, src Source, logger gokitlog.Logger) (*ImportStats, error) {
	if logger == nil {
		logger = gokitlog.NewNopLogger()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stats := NewImportStats()
	for _, table := range storeOrder {
		if err := storeTable(ctx, tx, driver, src, table, stats.table(table), logger); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}
	stats.Log(logger)
	return stats, nil
}

func storeTable(ctx context.Context, tx *sql.Tx, driver string, src Source, table Table, stats *TableStats, logger gokitlog.Logger) error {
	rows, err := src.Rows(ctx, table)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", table, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+string(table)); err != nil {
		return fmt.Errorf("error clearing %s: %w", table, err)
	}

	query, err := insertQuery(driver, table)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing insert into %s: %w", table, err)
	}
	defer stmt.Close()

	width := len(tableColumns[table])
	for _, row := range rows {
		stats.Read++
		if len(row.Fields) != width {
			stats.Skipped++
			level.Debug(logger).Log("msg", "not storing malformed row", "table", table, "line", row.Line)
			continue
		}
		args := make([]interface{}, width)
		for i, v := range row.Fields {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("error inserting %s line %d: %w", table, row.Line, err)
		}
		stats.Loaded++
	}
	return nil
}

func insertQuery(driver string, table Table) (string, error) {
	cols := tableColumns[table]
	marks := make([]string, len(cols))
	for i := range cols {
		switch driver {
		case "sqlite":
			marks[i] = "?"
		case "postgres":
			marks[i] = fmt.Sprintf("$%d", i+1)
		default:
			return "", fmt.Errorf("unsupported driver: %s", driver)
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", ")), nil
}
