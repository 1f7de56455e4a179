package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/nonsonwune/markbook/models"
)

// Expected field count per table. Rows with any other count are skipped.
var tableWidth = map[Table]int{
	StudentsTable: 2,
	CoursesTable:  3,
	TestsTable:    3,
	MarksTable:    3,
}

type Options struct {
	// SkipBadReferences drops tests that name an unknown course instead of
	// failing the load.
	SkipBadReferences bool
	Logger            gokitlog.Logger
}

// Dataset is everything the loader builds. Roster and Catalog are lookup
// tables; Marks hold raw values not yet applied to any student.
type Dataset struct {
	Roster  *models.Roster
	Catalog *models.Catalog
	Marks   []models.Mark
	Stats   *ImportStats
}

// Load reads the students, courses, tests and marks tables from src, in that
// order.
func Load(ctx context.Context, src Source, opts Options) (*Dataset, error) {
	return load(ctx, src, opts, StudentsTable, CoursesTable, TestsTable, MarksTable)
}

// LoadCatalog reads only the courses and tests tables. The returned dataset
// has an empty roster and no marks.
func LoadCatalog(ctx context.Context, src Source, opts Options) (*Dataset, error) {
	return load(ctx, src, opts, CoursesTable, TestsTable)
}

func load(ctx context.Context, src Source, opts Options, tables ...Table) (*Dataset, error) {
	l := &loader{
		src:    src,
		opts:   opts,
		logger: opts.Logger,
		ds: &Dataset{
			Roster:  models.NewRoster(),
			Catalog: models.NewCatalog(),
			Stats:   NewImportStats(),
		},
	}
	if l.logger == nil {
		l.logger = gokitlog.NewNopLogger()
	}

	steps := map[Table]func(Row) error{
		StudentsTable: l.student,
		CoursesTable:  l.course,
		TestsTable:    l.test,
		MarksTable:    l.mark,
	}
	for _, table := range tables {
		if err := l.loadTable(ctx, table, steps[table]); err != nil {
			return nil, err
		}
	}

	l.ds.Stats.Log(l.logger)
	return l.ds, nil
}

type loader struct {
	src    Source
	opts   Options
	logger gokitlog.Logger
	ds     *Dataset
}

func (l *loader) loadTable(ctx context.Context, table Table, load func(Row) error) error {
	rows, err := l.src.Rows(ctx, table)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", table, err)
	}

	stats := l.ds.Stats.table(table)
	width := tableWidth[table]
	for _, row := range rows {
		stats.Read++
		if len(row.Fields) != width {
			stats.Skipped++
			level.Debug(l.logger).Log(
				"msg", "skipping malformed row",
				"table", table,
				"line", row.Line,
				"fields", len(row.Fields),
				"want", width,
			)
			continue
		}
		if err := load(row); err != nil {
			var ie *ImportError
			if l.opts.SkipBadReferences && errors.As(err, &ie) && ie.Code == CodeUnknownCourse {
				stats.Rejected++
				level.Warn(l.logger).Log("msg", "skipping row", "err", err)
				continue
			}
			return err
		}
		stats.Loaded++
	}
	return nil
}

func (l *loader) student(row Row) error {
	l.ds.Roster.Put(models.NewStudent(row.Fields[0], row.Fields[1]))
	return nil
}

func (l *loader) course(row Row) error {
	f := row.Fields
	l.ds.Catalog.PutCourse(models.NewCourseDefinition(f[0], f[1], f[2]))
	return nil
}

func (l *loader) test(row Row) error {
	f := row.Fields
	weight, err := strconv.Atoi(strings.TrimSpace(f[2]))
	if err != nil {
		return &ImportError{
			Code:    CodeBadWeight,
			Table:   TestsTable,
			Line:    row.Line,
			Message: fmt.Sprintf("weight %q of test %s is not an integer", f[2], f[0]),
		}
	}

	test := &models.TestDefinition{ID: f[0], CourseID: f[1], Weight: weight}
	if !l.ds.Catalog.PutTest(test) {
		return &ImportError{
			Code:    CodeUnknownCourse,
			Table:   TestsTable,
			Line:    row.Line,
			Message: fmt.Sprintf("test %s references unknown course %s", f[0], f[1]),
		}
	}
	return nil
}

func (l *loader) mark(row Row) error {
	f := row.Fields
	l.ds.Marks = append(l.ds.Marks, models.Mark{
		TestID:    f[0],
		StudentID: f[1],
		Value:     f[2],
		Line:      row.Line,
	})
	return nil
}
