package gateway

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hours-reconciliation/internal/domain"
)

// CSVReportWriter persists report tables as one CSV file per table.
type CSVReportWriter struct{}

func NewCSVReportWriter() *CSVReportWriter {
	return &CSVReportWriter{}
}

// WriteTable writes a single table to path, creating parent directories as
// needed. The header row is always written, even for an empty table.
func (w *CSVReportWriter) WriteTable(path string, table domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("could not write header for %s: %w", table.Name, err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write row for %s: %w", table.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("could not flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteReport writes every report table under dir. Filenames are derived
// from the table name plus the run identifier, e.g.
// hours_comparison_<runID>.csv. It returns the written paths in table order.
func (w *CSVReportWriter) WriteReport(dir, runID string, report *domain.Report) ([]string, error) {
	tables := []domain.Table{
		report.EmployeeTable(),
		report.DepartmentTable(),
		report.FlagTable(),
		report.StatisticsTable(),
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, tableFileName(t.Name, runID))
		if err := w.WriteTable(path, t); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func tableFileName(name, runID string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	if runID == "" {
		return slug + ".csv"
	}
	return fmt.Sprintf("%s_%s.csv", slug, runID)
}
