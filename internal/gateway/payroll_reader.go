package gateway

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"hours-reconciliation/internal/domain"
)

// GetPayrollRows reads and parses the payroll Excel export. The worksheet
// carries a single header row (1-based headerRow) naming the categories with
// paired "<Category> Hrs" / "<Category> Gross" columns, plus the Sequence,
// Forename, Surname and Depart identity columns.
func (r *FileSourceRepository) GetPayrollRows(ctx context.Context, path, sheet string, headerRow int) ([]domain.PayrollRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: payroll file %s: %v", domain.ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: payroll sheet %q in %s: %v", domain.ErrSourceUnavailable, sheet, path, err)
	}
	if headerRow < 1 || headerRow > len(cells) {
		return nil, fmt.Errorf("%w: payroll sheet %q has no header row %d", domain.ErrSourceUnavailable, sheet, headerRow)
	}

	header := cells[headerRow-1]
	cols, err := mapPayrollColumns(header)
	if err != nil {
		return nil, fmt.Errorf("payroll sheet %q: %w", sheet, err)
	}

	base := filepath.Base(path)
	var rows []domain.PayrollRow
	for i := headerRow; i < len(cells); i++ {
		record := cells[i]
		if isEmptyRecord(record) {
			continue
		}

		row := domain.PayrollRow{
			Hours:      make(map[string]string),
			Gross:      make(map[string]string),
			SourceFile: base,
			Line:       i + 1,
		}
		for j, cell := range record {
			if j >= len(header) {
				break
			}
			switch cols.kinds[j] {
			case payrollColSequence:
				row.Sequence = cell
			case payrollColForename:
				row.Forename = strings.TrimSpace(cell)
			case payrollColSurname:
				row.Surname = strings.TrimSpace(cell)
			case payrollColDepartment:
				row.Department = strings.TrimSpace(cell)
			case payrollColHours:
				row.Hours[cols.labels[j]] = cell
			case payrollColGross:
				row.Gross[cols.labels[j]] = cell
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type payrollColKind int

const (
	payrollColSkip payrollColKind = iota
	payrollColSequence
	payrollColForename
	payrollColSurname
	payrollColDepartment
	payrollColHours
	payrollColGross
)

type payrollColumns struct {
	kinds  []payrollColKind
	labels []string // base category label for hours/gross columns
}

// mapPayrollColumns resolves the header purely by label. The old positional
// approach (pairing anonymous "Hrs"/"Hrs.1" columns to a separate name row by
// index) silently misaligned hours whenever the export's column order
// shifted, so a header that names neither an identity column nor a single
// paired category is rejected outright.
func mapPayrollColumns(header []string) (payrollColumns, error) {
	cols := payrollColumns{
		kinds:  make([]payrollColKind, len(header)),
		labels: make([]string, len(header)),
	}

	var haveSequence, havePair bool
	for i, label := range header {
		norm := strings.ToLower(strings.TrimSpace(label))
		norm = strings.Join(strings.Fields(norm), " ")
		switch norm {
		case "sequence", "staff number":
			cols.kinds[i] = payrollColSequence
			haveSequence = true
			continue
		case "forename":
			cols.kinds[i] = payrollColForename
			continue
		case "surname":
			cols.kinds[i] = payrollColSurname
			continue
		case "depart", "department":
			cols.kinds[i] = payrollColDepartment
			continue
		case "":
			cols.kinds[i] = payrollColSkip
			continue
		}

		switch {
		case strings.HasSuffix(norm, " hrs"), strings.HasSuffix(norm, " hours"):
			cols.kinds[i] = payrollColHours
			cols.labels[i] = strings.TrimSpace(label)
			havePair = true
		case strings.HasSuffix(norm, " gross"):
			cols.kinds[i] = payrollColGross
			cols.labels[i] = strings.TrimSpace(label)
		default:
			// Unrecognised non-paired columns are carried through as hour
			// labels; the normalizer decides mapped/ignored/unmapped and
			// records the warning.
			cols.kinds[i] = payrollColHours
			cols.labels[i] = strings.TrimSpace(label)
		}
	}

	if !haveSequence {
		return cols, fmt.Errorf("%w: header names no Sequence/Staff Number column", domain.ErrSourceUnavailable)
	}
	if !havePair {
		return cols, fmt.Errorf("%w: header names no \"<Category> Hrs\" column", domain.ErrSourceUnavailable)
	}
	return cols, nil
}

func isEmptyRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
