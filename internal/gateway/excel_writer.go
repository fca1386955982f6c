package gateway

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"hours-reconciliation/internal/domain"
)

// ExcelReportWriter persists the full report as a single workbook with one
// sheet per table.
type ExcelReportWriter struct{}

func NewExcelReportWriter() *ExcelReportWriter {
	return &ExcelReportWriter{}
}

// WriteReport writes the workbook to path. Sheet order follows the review
// workflow: the employee comparison first, then anomalies, the department
// rollup and the corpus statistics.
func (w *ExcelReportWriter) WriteReport(path string, report *domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save workbook to %s: %w", path, err)
	}
	return nil
}

// WriteTo streams the workbook to out, for consumers that never touch disk.
func (w *ExcelReportWriter) WriteTo(out io.Writer, report *domain.Report) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("could not stream workbook: %w", err)
	}
	return nil
}

func buildWorkbook(report *domain.Report) (*excelize.File, error) {
	tables := []domain.Table{
		report.EmployeeTable(),
		report.FlagTable(),
		report.DepartmentTable(),
		report.StatisticsTable(),
	}

	f := excelize.NewFile()

	for i, t := range tables {
		if i == 0 {
			// Rename the default sheet instead of leaving an empty Sheet1.
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("could not rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(t.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("could not create sheet %s: %w", t.Name, err)
			}
		}
		if err := writeSheet(f, t); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, t domain.Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("could not write header for sheet %s: %w", t.Name, err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("could not address row %d in sheet %s: %w", i+2, t.Name, err)
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return fmt.Errorf("could not write row %d in sheet %s: %w", i+2, t.Name, err)
		}
	}
	return nil
}
