package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"hours-reconciliation/internal/domain"
)

// FileSourceRepository implements the usecase.SourceRepository interface over
// the raw exports on disk: weekly timesheet CSVs and the payroll workbook.
type FileSourceRepository struct{}

// NewFileSourceRepository creates a new repository instance.
func NewFileSourceRepository() *FileSourceRepository {
	return &FileSourceRepository{}
}

// weekMarker matches the "-YYYY-WNN" period marker in timesheet filenames,
// e.g. "EskerLodgeNursingHome-2024-W01.csv".
var weekMarker = regexp.MustCompile(`(\d{4})-W(\d{1,2})`)

// periodFromFilename extracts the year+week marker from a timesheet filename.
func periodFromFilename(name string) (domain.Period, bool) {
	m := weekMarker.FindStringSubmatch(name)
	if m == nil {
		return domain.Period{}, false
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	return domain.Period{Year: year, Week: week}, true
}

// GetTimesheetRows reads and parses all weekly timesheet CSV files. Files are
// processed in sorted path order so output never depends on filesystem
// iteration order. Cell values are returned raw; conversion and validation
// belong to the normalizer so one bad cell never aborts a file.
func (r *FileSourceRepository) GetTimesheetRows(ctx context.Context, paths []string) ([]domain.TimesheetRow, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	var rows []domain.TimesheetRow
	for _, path := range sorted {
		fileRows, err := r.readTimesheetFile(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

func (r *FileSourceRepository) readTimesheetFile(path string) ([]domain.TimesheetRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: timesheet file %s: %v", domain.ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	base := filepath.Base(path)
	period, _ := periodFromFilename(base)

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header from %s: %v", domain.ErrSourceUnavailable, path, err)
	}

	// Columns are resolved by label, never by position.
	type colKind int
	const (
		colStaffNumber colKind = iota
		colName
		colDepartment
		colPayRate
		colHours
	)
	kinds := make([]colKind, len(header))
	for i, label := range header {
		switch domain.NormalizeLabel(label) {
		case "staff number":
			kinds[i] = colStaffNumber
		case "name", "employee name":
			kinds[i] = colName
		case "department name", "department":
			kinds[i] = colDepartment
		case "pay rate":
			kinds[i] = colPayRate
		default:
			kinds[i] = colHours
		}
	}

	var rows []domain.TimesheetRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		line++

		row := domain.TimesheetRow{
			Hours:      make(map[string]string),
			Period:     period,
			SourceFile: base,
			Line:       line,
		}
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			switch kinds[i] {
			case colStaffNumber:
				row.StaffNumber = cell
			case colName:
				row.Name = cell
			case colDepartment:
				row.Department = cell
			case colPayRate:
				row.PayRate = cell
			case colHours:
				row.Hours[header[i]] = cell
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
