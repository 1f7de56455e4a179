package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Value columns per table, in field order.
var tableColumns = map[Table][]string{
	StudentsTable: {"id", "name"},
	CoursesTable:  {"id", "name", "teacher"},
	TestsTable:    {"id", "course_id", "weight"},
	MarksTable:    {"test_id", "student_id", "mark"},
}

// SQLSource reads the four tables from a database laid out by
// migrations.InitSchema. Rows come back in seq order and seq is reported as
// the row's line. A row holding a NULL value is returned without fields so
// the loader drops it like any malformed row.
type SQLSource struct {
	DB *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{DB: db}
}

func (s *SQLSource) Rows(ctx context.Context, table Table) ([]Row, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", table)
	}
	query := fmt.Sprintf("SELECT seq, %s FROM %s ORDER BY seq", strings.Join(cols, ", "), table)

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", table, err)
	}
	defer rows.Close()

	width := len(cols)

	var out []Row
	for rows.Next() {
		var seq int64
		values := make([]sql.NullString, width)
		dest := make([]interface{}, 0, width+1)
		dest = append(dest, &seq)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", table, err)
		}

		row := Row{Line: int(seq)}
		if fields, ok := nullFree(values); ok {
			row.Fields = fields
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", table, err)
	}
	return out, nil
}

func nullFree(values []sql.NullString) ([]string, bool) {
	fields := make([]string, len(values))
	for i, v := range values {
		if !v.Valid {
			return nil, false
		}
		fields[i] = v.String
	}
	return fields, true
}
