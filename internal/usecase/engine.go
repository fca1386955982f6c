package usecase

import (
	"math"
	"sort"

	"hours-reconciliation/internal/config"
	"hours-reconciliation/internal/domain"
)

// Engine computes the difference tables and corpus statistics from the
// matched partitions. It holds no state between runs; Reconcile is a pure
// function of its inputs.
type Engine struct {
	tolerance float64
	ladder    []float64
	tiers     severityBounds
}

// NewEngine creates an engine with the configured tolerance parameters.
func NewEngine(cfg config.Reconciliation) *Engine {
	return &Engine{
		tolerance: cfg.ToleranceHours,
		ladder:    append([]float64(nil), cfg.ToleranceLadder...),
		tiers: severityBounds{
			low:    cfg.SeverityTiers.Low,
			medium: cfg.SeverityTiers.Medium,
			high:   cfg.SeverityTiers.High,
		},
	}
}

// Reconcile builds the employee comparison rows, the per-category difference
// records, the department rollups and the corpus statistics. All differences
// follow the documented payroll - timesheet sign convention, and absent
// categories are treated as zero so every sum is total.
func (e *Engine) Reconcile(timesheet, payroll *domain.HourTable, match domain.MatchResult) *domain.Report {
	report := &domain.Report{}

	var conflicts int
	var matchedDiffs, matchedTS, matchedPR []float64

	appendRow := func(key int64, ts, pr *domain.EmployeeHours, status domain.MatchStatus) {
		row := e.buildComparison(key, ts, pr, status)
		if row.DepartmentConflict {
			conflicts++
		}
		if status == domain.StatusMatched {
			matchedDiffs = append(matchedDiffs, row.TotalDiff)
			matchedTS = append(matchedTS, row.TimesheetTotal)
			matchedPR = append(matchedPR, row.PayrollTotal)
			report.Differences = append(report.Differences, differenceRecords(key, ts, pr)...)
		}
		report.Employees = append(report.Employees, row)
	}

	for _, key := range match.Matched {
		appendRow(key, timesheet.Employees[key], payroll.Employees[key], domain.StatusMatched)
	}
	for _, key := range match.TimesheetOnly {
		appendRow(key, timesheet.Employees[key], nil, domain.StatusTimesheetOnly)
	}
	for _, key := range match.PayrollOnly {
		appendRow(key, nil, payroll.Employees[key], domain.StatusPayrollOnly)
	}

	report.Departments = rollupDepartments(report.Employees)

	report.Statistics = domain.Statistics{
		TotalEmployees:      match.Total(),
		MatchedCount:        len(match.Matched),
		TimesheetOnlyCount:  len(match.TimesheetOnly),
		PayrollOnlyCount:    len(match.PayrollOnly),
		TimesheetTotalHours: timesheet.TotalHours(),
		PayrollTotalHours:   payroll.TotalHours(),
		TotalDifference:     payroll.TotalHours() - timesheet.TotalHours(),
		MatchRates:          matchRates(matchedDiffs, e.ladder),
		Correlation:         pearson(matchedTS, matchedPR),
		RMSE:                rmse(matchedTS, matchedPR),
		DepartmentConflicts: conflicts,
	}

	return report
}

func (e *Engine) buildComparison(key int64, ts, pr *domain.EmployeeHours, status domain.MatchStatus) domain.EmployeeComparison {
	row := domain.EmployeeComparison{
		Key:            key,
		Status:         status,
		TimesheetHours: make(map[domain.Category]float64),
		PayrollHours:   make(map[domain.Category]float64),
		CategoryDiffs:  make(map[domain.Category]float64),
	}

	if ts != nil {
		row.Name = ts.Identity.Name
		row.Department = ts.Department
		for cat, h := range ts.Hours {
			row.TimesheetHours[cat] = h
		}
		row.TimesheetTotal = ts.Total()
	}
	if pr != nil {
		if row.Name == "" {
			row.Name = pr.Identity.Name
		}
		for cat, h := range pr.Hours {
			row.PayrollHours[cat] = h
		}
		row.PayrollTotal = pr.Total()

		// The timesheet is the canonical source of truth for department
		// assignment. When payroll disagrees the conflict is recorded, not
		// silently resolved.
		switch {
		case row.Department == "":
			row.Department = pr.Department
		case pr.Department != "" && pr.Department != row.Department:
			row.DepartmentConflict = true
			row.PayrollDepartment = pr.Department
		}
	}
	if row.Department == "" {
		row.Department = "Unknown"
	}

	for _, cat := range domain.Categories() {
		d := row.PayrollHours[cat] - row.TimesheetHours[cat]
		if d != 0 {
			row.CategoryDiffs[cat] = d
		}
	}
	row.TotalDiff = row.PayrollTotal - row.TimesheetTotal

	if status == domain.StatusMatched {
		row.Mismatch = math.Abs(row.TotalDiff) > e.tolerance
		row.Severity = severityFor(math.Abs(row.TotalDiff), e.tiers)
	}
	return row
}

// differenceRecords emits one record per category touched by either source,
// plus the employee-total record, in category order.
func differenceRecords(key int64, ts, pr *domain.EmployeeHours) []domain.DifferenceRecord {
	var records []domain.DifferenceRecord
	for _, cat := range domain.Categories() {
		tsHours := ts.HoursFor(cat)
		prHours := pr.HoursFor(cat)
		if tsHours == 0 && prHours == 0 {
			continue
		}
		records = append(records, domain.DifferenceRecord{
			EmployeeKey:    key,
			Category:       cat,
			TimesheetHours: tsHours,
			PayrollHours:   prHours,
			Value:          prHours - tsHours,
		})
	}
	records = append(records, domain.DifferenceRecord{
		EmployeeKey:    key,
		IsTotal:        true,
		TimesheetHours: ts.Total(),
		PayrollHours:   pr.Total(),
		Value:          pr.Total() - ts.Total(),
	})
	return records
}

// rollupDepartments sums the comparison rows by department. Each employee
// contributes to exactly one department, the canonical assignment on their
// row, so no employee is double-counted or dropped.
func rollupDepartments(rows []domain.EmployeeComparison) []domain.DepartmentSummary {
	byName := make(map[string]*domain.DepartmentSummary)
	for _, row := range rows {
		d, ok := byName[row.Department]
		if !ok {
			d = &domain.DepartmentSummary{
				Department:          row.Department,
				TimesheetByCategory: make(map[domain.Category]float64),
				PayrollByCategory:   make(map[domain.Category]float64),
			}
			byName[row.Department] = d
		}
		d.EmployeeCount++
		for cat, h := range row.TimesheetHours {
			d.TimesheetByCategory[cat] += h
		}
		for cat, h := range row.PayrollHours {
			d.PayrollByCategory[cat] += h
		}
		d.TimesheetTotal += row.TimesheetTotal
		d.PayrollTotal += row.PayrollTotal
		d.Difference += row.TotalDiff
		if row.Mismatch {
			d.MismatchCount++
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.DepartmentSummary, 0, len(names))
	for _, name := range names {
		out = append(out, *byName[name])
	}
	return out
}
