package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table names one of the four input tables.
type Table string

const (
	StudentsTable Table = "students"
	CoursesTable  Table = "courses"
	TestsTable    Table = "tests"
	MarksTable    Table = "marks"
)

// Row is one data row of a table with its 1-based position in the source.
type Row struct {
	Line   int
	Fields []string
}

// Source yields the data rows of a table, header excluded, in source order.
type Source interface {
	Rows(ctx context.Context, table Table) ([]Row, error)
}

// FileSource reads each table from its own file. Files ending in .xlsx are
// read from their first worksheet; everything else is parsed as CSV.
type FileSource struct {
	Paths map[Table]string
}

func NewFileSource(students, courses, tests, marks string) *FileSource {
	return &FileSource{Paths: map[Table]string{
		StudentsTable: students,
		CoursesTable:  courses,
		TestsTable:    tests,
		MarksTable:    marks,
	}}
}

func (s *FileSource) Rows(ctx context.Context, table Table) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, ok := s.Paths[table]
	if !ok || path == "" {
		return nil, fmt.Errorf("no file configured for %s table", table)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

func readCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	return parseCSV(file)
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // field counts are checked per table by the loader
	reader.LazyQuotes = true

	var rows []Row
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		if header {
			header = false
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{Line: line, Fields: record})
	}
	return rows, nil
}

func readXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheets[0], err)
	}

	var rows []Row
	header := true
	for i, record := range records {
		// empty rows behave like blank CSV lines
		if len(record) == 0 {
			continue
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, Row{Line: i + 1, Fields: record})
	}
	return rows, nil
}
