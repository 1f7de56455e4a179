package importer

import (
	"sort"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// TableStats counts what happened to the rows of one table.
type TableStats struct {
	Read     int
	Loaded   int
	Skipped  int // wrong field count
	Rejected int // unknown reference, hardened mode only
}

type ImportStats struct {
	Tables map[Table]*TableStats
}

func NewImportStats() *ImportStats {
	return &ImportStats{Tables: map[Table]*TableStats{
		StudentsTable: {},
		CoursesTable:  {},
		TestsTable:    {},
		MarksTable:    {},
	}}
}

func (s *ImportStats) table(t Table) *TableStats {
	ts, ok := s.Tables[t]
	if !ok {
		ts = &TableStats{}
		s.Tables[t] = ts
	}
	return ts
}

// Total sums every table.
func (s *ImportStats) Total() TableStats {
	var total TableStats
	for _, ts := range s.Tables {
		total.Read += ts.Read
		total.Loaded += ts.Loaded
		total.Skipped += ts.Skipped
		total.Rejected += ts.Rejected
	}
	return total
}

func (s *ImportStats) Log(logger gokitlog.Logger) {
	names := make([]string, 0, len(s.Tables))
	for t := range s.Tables {
		names = append(names, string(t))
	}
	sort.Strings(names)
	for _, name := range names {
		ts := s.Tables[Table(name)]
		level.Info(logger).Log(
			"msg", "table loaded",
			"table", name,
			"read", ts.Read,
			"loaded", ts.Loaded,
			"skipped", ts.Skipped,
			"rejected", ts.Rejected,
		)
	}
}
