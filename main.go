package main

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	gokitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/nonsonwune/markbook/config"
	"github.com/nonsonwune/markbook/grading"
	"github.com/nonsonwune/markbook/importer"
	"github.com/nonsonwune/markbook/logging"
	"github.com/nonsonwune/markbook/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	logger := logging.NewLogger(os.Stderr, cfg.LogLevel)
	cmd := newRootCmd(cfg, logger)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config, logger gokitlog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "markbook COURSES STUDENTS TESTS MARKS OUTPUT",
		Short: "Compute weighted course grades and student averages",
		Long: `markbook reads the courses, students, tests and marks tables, computes
every student's weighted course grades and overall average, and writes
the report as JSON to OUTPUT.

A COURSES path that is the name of a subcommand (from-db, import-db,
weights, help) runs that subcommand instead; write it as ./weights.`,
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := importer.NewFileSource(args[1], args[0], args[2], args[3])
			return generate(cmd.Context(), cfg, logger, src, args[4], cmd.ErrOrStderr())
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newFromDBCmd(cfg, logger),
		newImportDBCmd(cfg, logger),
		newWeightsCmd(cfg, logger),
	)
	return root
}

func newFromDBCmd(cfg config.Config, logger gokitlog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "from-db OUTPUT",
		Short: "Build the report from tables stored in a database",
		Long: `from-db reads the students, courses, tests and marks tables from the
database named by MARKBOOK_DB_DRIVER and MARKBOOK_DB_DSN.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx, cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return generate(ctx, cfg, logger, importer.NewSQLSource(db), args[0], cmd.ErrOrStderr())
		},
	}
}

func newImportDBCmd(cfg config.Config, logger gokitlog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "import-db COURSES STUDENTS TESTS MARKS",
		Short: "Copy the four tables from files into a database",
		Long: `import-db creates the students, courses, tests and marks tables in the
database named by MARKBOOK_DB_DRIVER and MARKBOOK_DB_DSN when they are
missing, and replaces their contents with the rows of the given files.
Values are stored as read; from-db parses them.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDBForImport(ctx, cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			src := importer.NewFileSource(args[1], args[0], args[2], args[3])
			stats, err := importer.Store(ctx, db, cfg.DBDriver, src, logger)
			if err != nil {
				return err
			}

			total := stats.Total()
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d rows (%d malformed rows left out)\n",
				total.Loaded, total.Skipped)
			return nil
		},
	}
}

func newWeightsCmd(cfg config.Config, logger gokitlog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "weights COURSES TESTS",
		Short: "Show each course's test weight total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := importer.NewFileSource("", args[0], args[1], "")
			ds, err := importer.LoadCatalog(cmd.Context(), src, importer.Options{
				SkipBadReferences: cfg.SkipBadReferences,
				Logger:            logger,
			})
			if err != nil {
				return err
			}
			grading.ValidateWeights(ds.Catalog, logger)
			report.PrintWeights(cmd.OutOrStdout(), ds.Catalog)
			return nil
		},
	}
}

// generate runs the whole pipeline: load, validate weights, apply marks,
// compute grades, write the report.
func generate(ctx context.Context, cfg config.Config, logger gokitlog.Logger, src importer.Source, output string, stderr io.Writer) error {
	ds, err := importer.Load(ctx, src, importer.Options{
		SkipBadReferences: cfg.SkipBadReferences,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	grading.ValidateWeights(ds.Catalog, logger)

	agg := grading.NewAggregator(ds.Catalog, ds.Roster,
		grading.WithSkipBadReferences(cfg.SkipBadReferences),
		grading.WithLogger(logger),
	)
	if err := agg.ApplyAll(ds.Marks); err != nil {
		return err
	}
	if err := agg.ComputeGrades(); err != nil {
		return err
	}

	rep, err := report.Build(ds.Roster)
	if err != nil {
		return err
	}
	if err := report.WriteFile(output, rep); err != nil {
		return err
	}

	if cfg.Summary {
		report.Summary{
			Report:  rep,
			Catalog: ds.Catalog,
			Counts:  runCounts(ds.Stats, agg.Stats()),
		}.Print(stderr)
		color.New(color.FgGreen).Fprintf(stderr, "Report written to %s\n", output)
	}
	return nil
}

func runCounts(imp *importer.ImportStats, agg grading.AggregateStats) []report.Count {
	total := imp.Total()
	return []report.Count{
		{Label: "Rows read", Value: total.Read},
		{Label: "Rows skipped (malformed)", Value: total.Skipped},
		{Label: "Rows rejected (unknown reference)", Value: total.Rejected + agg.Rejected},
		{Label: "Marks applied", Value: agg.Applied},
		{Label: "Marks overwritten", Value: agg.Overwritten},
	}
}
