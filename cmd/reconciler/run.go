package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/gateway"
	"hours-reconciliation/internal/usecase"
)

type runOptions struct {
	timesheetGlob string
	payrollFile   string
	payrollSheet  string
	outDir        string
	writeExcel    bool
	tolerance     float64
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the reconciliation once and write the result files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("timesheets") {
				cfg.Sources.TimesheetGlob = opts.timesheetGlob
			}
			if cmd.Flags().Changed("payroll") {
				cfg.Sources.PayrollFile = opts.payrollFile
			}
			if cmd.Flags().Changed("sheet") {
				cfg.Sources.PayrollSheet = opts.payrollSheet
			}
			if cmd.Flags().Changed("out") {
				cfg.Export.Dir = opts.outDir
			}
			if cmd.Flags().Changed("tolerance") {
				cfg.Reconciliation.ToleranceHours = opts.tolerance
			}

			paths, err := filepath.Glob(cfg.Sources.TimesheetGlob)
			if err != nil {
				return fmt.Errorf("bad timesheet glob %q: %w", cfg.Sources.TimesheetGlob, err)
			}
			sort.Strings(paths)

			repo := gateway.NewFileSourceRepository()
			uc := usecase.NewReconciliationUseCase(repo, cfg, root.log)

			report, err := uc.Reconcile(cmd.Context(), paths, cfg.Sources.PayrollFile)
			if err != nil {
				return err
			}

			runID := uuid.New().String()
			csvWriter := gateway.NewCSVReportWriter()
			written, err := csvWriter.WriteReport(cfg.Export.Dir, runID, report)
			if err != nil {
				return err
			}
			if opts.writeExcel {
				xlsxPath := filepath.Join(cfg.Export.Dir, fmt.Sprintf("hours_reconciliation_%s.xlsx", runID))
				if err := gateway.NewExcelReportWriter().WriteReport(xlsxPath, report); err != nil {
					return err
				}
				written = append(written, xlsxPath)
			}

			printSummary(cmd, report)
			cmd.Println()
			for _, p := range written {
				cmd.Printf("Wrote %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.timesheetGlob, "timesheets", "", "glob matching the weekly timesheet CSV exports")
	cmd.Flags().StringVar(&opts.payrollFile, "payroll", "", "payroll Excel export")
	cmd.Flags().StringVar(&opts.payrollSheet, "sheet", "", "payroll worksheet name")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "directory for result files")
	cmd.Flags().BoolVar(&opts.writeExcel, "xlsx", false, "also write a single multi-sheet workbook")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "mismatch tolerance in hours")

	return cmd
}

// printSummary writes the human-readable run summary: corpus statistics,
// then the largest total differences among matched employees.
func printSummary(cmd *cobra.Command, report *domain.Report) {
	cmd.Println("=== Reconciliation Summary ===")
	for _, row := range report.StatisticsTable().Rows {
		cmd.Printf("%-35s %s\n", row[0], row[1])
	}

	type discrepancy struct {
		key  int64
		name string
		diff float64
	}
	var top []discrepancy
	for _, e := range report.Employees {
		if e.Status == domain.StatusMatched && e.Mismatch {
			top = append(top, discrepancy{key: e.Key, name: e.Name, diff: e.TotalDiff})
		}
	}
	if len(top) == 0 {
		return
	}
	sort.Slice(top, func(i, j int) bool {
		di, dj := top[i].diff, top[j].diff
		if di < 0 {
			di = -di
		}
		if dj < 0 {
			dj = -dj
		}
		if di != dj {
			return di > dj
		}
		return top[i].key < top[j].key
	})
	if len(top) > 10 {
		top = top[:10]
	}

	cmd.Println()
	cmd.Println("Largest discrepancies (payroll - timesheet):")
	for _, d := range top {
		cmd.Printf("  %-8d %-30s %+.2fh\n", d.key, d.name, d.diff)
	}
}
