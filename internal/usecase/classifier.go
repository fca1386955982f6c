package usecase

import (
	"fmt"
	"sort"
	"strings"

	"hours-reconciliation/internal/config"
	"hours-reconciliation/internal/domain"
)

// Classifier applies the threshold rules to the normalized tables and emits
// anomaly flags. It is a pure function of its inputs: it never mutates a
// record, and re-running it on the same tables yields the same flag set.
type Classifier struct {
	excessive float64
	overtime  float64
	inactive  int
	spanRatio float64
}

// NewClassifier creates a classifier with the configured thresholds.
func NewClassifier(cfg config.Thresholds) *Classifier {
	return &Classifier{
		excessive: cfg.ExcessiveWeeklyHours,
		overtime:  cfg.OvertimeWeeklyHours,
		inactive:  cfg.InactiveWeeks,
		spanRatio: cfg.PeriodSpanRatio,
	}
}

// Classify runs every rule. payrollWeeks is the span the payroll export
// declares itself to cover, in weeks; zero means undeclared and skips the
// time-period check.
func (c *Classifier) Classify(timesheet, payroll *domain.HourTable, payrollWeeks int) []domain.AnomalyFlag {
	var flags []domain.AnomalyFlag
	flags = append(flags, c.hourVolumeFlags(timesheet)...)
	flags = append(flags, c.missingPayRateFlags(timesheet, payroll)...)
	flags = append(flags, c.inactiveStaffFlags(timesheet)...)
	if f, ok := c.timePeriodFlag(timesheet, payroll, payrollWeeks); ok {
		flags = append(flags, f)
	}
	return flags
}

// hourVolumeFlags checks each employee's weekly totals: above the excessive
// threshold is a High flag; above the overtime threshold but at or below
// excessive is a Medium flag. A week under both thresholds raises nothing.
func (c *Classifier) hourVolumeFlags(timesheet *domain.HourTable) []domain.AnomalyFlag {
	var flags []domain.AnomalyFlag
	for _, key := range timesheet.SortedKeys() {
		e := timesheet.Employees[key]
		for _, period := range sortedEmployeePeriods(e) {
			total := e.PeriodTotals[period]
			switch {
			case total > c.excessive:
				flags = append(flags, domain.AnomalyFlag{
					Kind:         domain.FlagExcessiveHours,
					Severity:     domain.SeverityHigh,
					EmployeeKey:  key,
					EmployeeName: e.Identity.Name,
					Department:   e.Department,
					Period:       period.String(),
					Value:        total,
					Evidence:     fmt.Sprintf("%.2f hours recorded in one week, above the %.0fh limit", total, c.excessive),
				})
			case total > c.overtime:
				flags = append(flags, domain.AnomalyFlag{
					Kind:         domain.FlagOvertimeInstance,
					Severity:     domain.SeverityMedium,
					EmployeeKey:  key,
					EmployeeName: e.Identity.Name,
					Department:   e.Department,
					Period:       period.String(),
					Value:        total,
					Evidence:     fmt.Sprintf("%.2f hours recorded in one week, above the %.0fh overtime threshold", total, c.overtime),
				})
			}
		}
	}
	return flags
}

// missingPayRateFlags finds hours recorded with no corresponding pay figure:
// timesheet employees with worked hours but no pay rate, and payroll
// categories with hours but zero gross pay.
func (c *Classifier) missingPayRateFlags(timesheet, payroll *domain.HourTable) []domain.AnomalyFlag {
	var flags []domain.AnomalyFlag

	for _, key := range timesheet.SortedKeys() {
		e := timesheet.Employees[key]
		if e.Total() > 0 && !e.HasPayRate {
			flags = append(flags, domain.AnomalyFlag{
				Kind:         domain.FlagMissingPayRate,
				Severity:     domain.SeverityHigh,
				EmployeeKey:  key,
				EmployeeName: e.Identity.Name,
				Department:   e.Department,
				Value:        e.Total(),
				Evidence:     fmt.Sprintf("%.2f timesheet hours recorded with no pay rate on any row", e.Total()),
			})
		}
	}

	for _, key := range payroll.SortedKeys() {
		e := payroll.Employees[key]
		var missing []string
		for _, cat := range domain.Categories() {
			if e.HoursFor(cat) > 0 && e.Gross[cat] == 0 {
				missing = append(missing, cat.String())
			}
		}
		if len(missing) > 0 {
			flags = append(flags, domain.AnomalyFlag{
				Kind:         domain.FlagMissingPayRate,
				Severity:     domain.SeverityHigh,
				EmployeeKey:  key,
				EmployeeName: e.Identity.Name,
				Department:   e.Department,
				Value:        e.Total(),
				Evidence:     "payroll hours with zero gross pay in: " + strings.Join(missing, ", "),
			})
		}
	}

	return flags
}

// inactiveStaffFlags finds employees with a run of consecutive zero-hour
// weeks at least the configured length. The week axis is the set of periods
// observed anywhere in the source, so a week an employee simply has no row
// for counts as zero recorded hours.
func (c *Classifier) inactiveStaffFlags(timesheet *domain.HourTable) []domain.AnomalyFlag {
	if len(timesheet.Periods) == 0 {
		return nil
	}

	var flags []domain.AnomalyFlag
	for _, key := range timesheet.SortedKeys() {
		e := timesheet.Employees[key]

		streak, longest := 0, 0
		for _, period := range timesheet.Periods {
			if e.PeriodTotals[period] == 0 {
				streak++
				if streak > longest {
					longest = streak
				}
			} else {
				streak = 0
			}
		}
		if longest >= c.inactive {
			flags = append(flags, domain.AnomalyFlag{
				Kind:         domain.FlagInactiveStaff,
				Severity:     domain.SeverityLow,
				EmployeeKey:  key,
				EmployeeName: e.Identity.Name,
				Department:   e.Department,
				Value:        float64(longest),
				Evidence:     fmt.Sprintf("%d consecutive weeks with zero recorded hours", longest),
			})
		}
	}
	return flags
}

// timePeriodFlag compares the spans the two sources cover. When the spans
// diverge by more than the configured ratio, the aggregate hour totals are
// not comparable as-is, and the flag carries the expected-vs-actual ratio so
// the reader can judge whether the corpus difference is explained by
// coverage alone.
func (c *Classifier) timePeriodFlag(timesheet, payroll *domain.HourTable, payrollWeeks int) (domain.AnomalyFlag, bool) {
	tsWeeks := len(timesheet.Periods)
	if tsWeeks == 0 || payrollWeeks <= 0 {
		return domain.AnomalyFlag{}, false
	}

	ratio := float64(tsWeeks) / float64(payrollWeeks)
	if ratio < 1 {
		ratio = 1 / ratio
	}
	if ratio <= c.spanRatio {
		return domain.AnomalyFlag{}, false
	}

	expectedPayroll := payroll.TotalHours() * float64(tsWeeks) / float64(payrollWeeks)
	return domain.AnomalyFlag{
		Kind:     domain.FlagTimePeriodMismatch,
		Severity: domain.SeverityMedium,
		Value:    ratio,
		Evidence: fmt.Sprintf(
			"timesheet covers %d weeks, payroll declares %d; payroll-equivalent hours for the timesheet span would be %.0f against %.0f actual",
			tsWeeks, payrollWeeks, expectedPayroll, payroll.TotalHours()),
	}, true
}

func sortedEmployeePeriods(e *domain.EmployeeHours) []domain.Period {
	periods := make([]domain.Period, 0, len(e.PeriodTotals))
	for p := range e.PeriodTotals {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods
}
