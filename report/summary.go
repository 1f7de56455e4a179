package report

import (
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nonsonwune/markbook/grading"
	"github.com/nonsonwune/markbook/models"
)

// Count is one labelled number in the run statistics table.
type Count struct {
	Label string
	Value int
}

type Summary struct {
	Report  *Report
	Catalog *models.Catalog
	Counts  []Count
}

// Print renders the per-student table, the invalid courses and the run
// statistics.
func (s Summary) Print(w io.Writer) {
	if s.Report != nil {
		color.New(color.FgCyan).Fprintln(w, "\nStudent Averages")
		table := newTable(w)
		table.SetHeader([]string{"ID", "Name", "Courses", "Invalid", "Total Average"})
		for _, st := range s.Report.Students {
			invalid := 0
			for _, c := range st.Courses {
				if _, ok := c.(InvalidCourse); ok {
					invalid++
				}
			}
			table.Append([]string{
				strconv.Itoa(st.ID),
				st.Name,
				strconv.Itoa(len(st.Courses)),
				strconv.Itoa(invalid),
				st.TotalAverage.String(),
			})
		}
		table.Render()
	}

	if s.Catalog != nil {
		var invalid []*models.CourseDefinition
		for _, def := range s.Catalog.Courses() {
			if !def.ValidWeights {
				invalid = append(invalid, def)
			}
		}
		if len(invalid) > 0 {
			color.New(color.FgYellow).Fprintln(w, "\nCourses With Invalid Weights")
			table := newTable(w)
			table.SetHeader([]string{"Course", "Name", "Teacher", "Tests", "Weight Total"})
			for _, def := range invalid {
				table.Append([]string{
					def.ID,
					def.Name,
					def.Teacher,
					strconv.Itoa(len(def.Tests())),
					strconv.Itoa(def.WeightTotal()),
				})
			}
			table.Render()
		}
	}

	if len(s.Counts) > 0 {
		color.New(color.FgCyan).Fprintln(w, "\nRun Statistics")
		table := newTable(w)
		table.SetHeader([]string{"Item", "Count"})
		for _, c := range s.Counts {
			table.Append([]string{c.Label, strconv.Itoa(c.Value)})
		}
		table.Render()
	}
}

// PrintWeights lists every course with its weight total and whether the
// total makes the course valid.
func PrintWeights(w io.Writer, catalog *models.Catalog) {
	table := newTable(w)
	table.SetHeader([]string{"Course", "Name", "Teacher", "Tests", "Weight Total", "Status"})

	invalid := 0
	for _, def := range catalog.Courses() {
		status := "valid"
		if def.WeightTotal() != grading.RequiredWeightTotal {
			status = "invalid"
			invalid++
		}
		table.Append([]string{
			def.ID,
			def.Name,
			def.Teacher,
			strconv.Itoa(len(def.Tests())),
			strconv.Itoa(def.WeightTotal()),
			status,
		})
	}
	table.Render()

	if invalid > 0 {
		color.New(color.FgRed).Fprintf(w, "%d of %d courses have weights that do not add up to %d\n",
			invalid, len(catalog.Courses()), grading.RequiredWeightTotal)
		return
	}
	color.New(color.FgGreen).Fprintf(w, "All %d courses have valid weights\n", len(catalog.Courses()))
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	return table
}
