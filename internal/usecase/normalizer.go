package usecase

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"hours-reconciliation/internal/domain"
)

// Normalizer converts raw source rows into canonical per-employee,
// per-category hour tables. Row-level problems are recovered: the row is
// excluded, counted in DataQuality and logged, so a handful of malformed rows
// never abort the reconciliation.
type Normalizer struct {
	log zerolog.Logger
}

// NewNormalizer creates a normalizer that logs excluded rows to log.
func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// ParseHours converts a raw hour cell to decimal hours. "HH:MM" becomes
// H + M/60; a value already in decimal form passes through unchanged, so the
// conversion is idempotent. An empty cell is zero hours. Anything else is a
// format error, never silently zero.
func ParseHours(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, &domain.FormatError{Value: raw, Reason: "expected HH:MM"}
		}
		hours, err := strconv.Atoi(parts[0])
		if err != nil || hours < 0 {
			return 0, &domain.FormatError{Value: raw, Reason: "invalid hour component"}
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil || minutes < 0 || minutes > 59 {
			return 0, &domain.FormatError{Value: raw, Reason: "invalid minute component"}
		}
		return float64(hours) + float64(minutes)/60.0, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.FormatError{Value: raw, Reason: "not a decimal hour value"}
	}
	if v < 0 {
		return 0, &domain.FormatError{Value: raw, Reason: "hours must not be negative"}
	}
	return v, nil
}

// parseIdentityKey extracts the stable numeric employee key. Spreadsheet
// round-trips sometimes render it as "1001.0", so an integral float is
// accepted; anything non-numeric or non-positive is an identity error.
func parseIdentityKey(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &domain.IdentityError{Value: raw}
	}
	if key, err := strconv.ParseInt(s, 10, 64); err == nil {
		if key <= 0 {
			return 0, &domain.IdentityError{Value: raw}
		}
		return key, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f != math.Trunc(f) {
		return 0, &domain.IdentityError{Value: raw}
	}
	return int64(f), nil
}

// NormalizeTimesheet builds the canonical timesheet table. Hours for the same
// (identity, category) are summed across the weekly files, never overwritten,
// and per-week totals are kept for the classifier.
func (n *Normalizer) NormalizeTimesheet(rows []domain.TimesheetRow) (*domain.HourTable, domain.DataQuality) {
	table := domain.NewHourTable(domain.SourceTimesheet)
	quality := domain.DataQuality{Source: domain.SourceTimesheet}
	periods := make(map[domain.Period]struct{})

	for _, row := range rows {
		quality.RowsRead++

		key, err := parseIdentityKey(row.StaffNumber)
		if err != nil {
			quality.UnidentifiableRows++
			n.log.Warn().Str("file", row.SourceFile).Int("line", row.Line).
				Str("staff_number", row.StaffNumber).Msg("timesheet row has no usable identity key")
			continue
		}

		parsed, ok := n.parseHourCells(row.Hours, row.SourceFile, row.Line, &quality)
		if !ok {
			continue
		}

		e := table.Employee(key, strings.TrimSpace(row.Name))
		if e.Department == "" {
			e.Department = strings.TrimSpace(row.Department)
		}
		if rate, err := strconv.ParseFloat(strings.TrimSpace(row.PayRate), 64); err == nil && rate > 0 {
			e.HasPayRate = true
		}

		var rowTotal float64
		for cat, hours := range parsed {
			e.AddHours(cat, hours)
			rowTotal += hours
		}
		if e.PeriodTotals == nil {
			e.PeriodTotals = make(map[domain.Period]float64)
		}
		e.PeriodTotals[row.Period] += rowTotal
		periods[row.Period] = struct{}{}
	}

	table.Periods = sortedPeriods(periods)
	return table, quality
}

// NormalizePayroll builds the canonical payroll table, carrying the paired
// gross-pay figures alongside the hours for the pay-rate checks.
func (n *Normalizer) NormalizePayroll(rows []domain.PayrollRow) (*domain.HourTable, domain.DataQuality) {
	table := domain.NewHourTable(domain.SourcePayroll)
	quality := domain.DataQuality{Source: domain.SourcePayroll}

	for _, row := range rows {
		quality.RowsRead++

		key, err := parseIdentityKey(row.Sequence)
		if err != nil {
			quality.UnidentifiableRows++
			n.log.Warn().Str("file", row.SourceFile).Int("line", row.Line).
				Str("sequence", row.Sequence).Msg("payroll row has no usable identity key")
			continue
		}

		parsed, ok := n.parseHourCells(row.Hours, row.SourceFile, row.Line, &quality)
		if !ok {
			continue
		}
		gross, ok := n.parseGrossCells(row.Gross, row.SourceFile, row.Line, &quality)
		if !ok {
			continue
		}

		e := table.Employee(key, row.FullName())
		if e.Department == "" {
			e.Department = row.Department
		}
		for cat, hours := range parsed {
			e.AddHours(cat, hours)
		}
		if len(gross) > 0 && e.Gross == nil {
			e.Gross = make(map[domain.Category]float64)
		}
		for cat, amount := range gross {
			e.Gross[cat] += amount
		}
	}

	return table, quality
}

// parseHourCells resolves and converts one row's hour cells. A cell under an
// unmapped label is dropped with a warning but keeps the row alive; a
// malformed cell under a mapped label excludes the whole row.
func (n *Normalizer) parseHourCells(cells map[string]string, file string, line int, quality *domain.DataQuality) (map[domain.Category]float64, bool) {
	parsed := make(map[domain.Category]float64)
	for label, raw := range cells {
		cat, mapping := domain.CategoryForLabel(label)
		switch mapping {
		case domain.LabelIgnored:
			continue
		case domain.LabelUnmapped:
			if strings.TrimSpace(raw) != "" {
				quality.RecordUnmappedLabel(label)
				n.log.Warn().Str("file", file).Int("line", line).Str("label", label).
					Msg("hour cell under unrecognised column label dropped")
			}
			continue
		}

		hours, err := ParseHours(raw)
		if err != nil {
			quality.ExcludedRows++
			n.log.Warn().Str("file", file).Int("line", line).Str("column", label).
				Str("value", raw).Err(err).Msg("row excluded: malformed hour value")
			return nil, false
		}
		if hours != 0 {
			parsed[cat] += hours
		}
	}
	return parsed, true
}

func (n *Normalizer) parseGrossCells(cells map[string]string, file string, line int, quality *domain.DataQuality) (map[domain.Category]float64, bool) {
	parsed := make(map[domain.Category]float64)
	for label, raw := range cells {
		cat, mapping := domain.CategoryForLabel(label)
		if mapping != domain.LabelMapped {
			// Warnings for unmapped labels are recorded once, from the
			// paired hours column.
			continue
		}
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		amount, err := strconv.ParseFloat(s, 64)
		if err != nil {
			quality.ExcludedRows++
			n.log.Warn().Str("file", file).Int("line", line).Str("column", label).
				Str("value", raw).Msg("row excluded: malformed gross pay value")
			return nil, false
		}
		if amount != 0 {
			parsed[cat] += amount
		}
	}
	return parsed, true
}

func sortedPeriods(set map[domain.Period]struct{}) []domain.Period {
	out := make([]domain.Period, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
