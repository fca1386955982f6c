package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EmployeeComparison is one row of the employee-level result table: both
// sources' hours per category, the per-category and total differences, and
// the triage outcome. Differences follow the payroll - timesheet convention.
type EmployeeComparison struct {
	Key        int64  `json:"key"`
	Name       string `json:"name"`
	Department string `json:"department"`

	// DepartmentConflict is set when the two sources disagree on the
	// employee's department. The timesheet value is the canonical one; the
	// payroll value is preserved here rather than silently discarded.
	DepartmentConflict bool   `json:"department_conflict,omitempty"`
	PayrollDepartment  string `json:"payroll_department,omitempty"`

	Status MatchStatus `json:"status"`

	TimesheetHours map[Category]float64 `json:"timesheet_hours"`
	PayrollHours   map[Category]float64 `json:"payroll_hours"`
	CategoryDiffs  map[Category]float64 `json:"category_diffs"`

	TimesheetTotal float64 `json:"timesheet_total"`
	PayrollTotal   float64 `json:"payroll_total"`
	TotalDiff      float64 `json:"total_diff"`

	// Mismatch is set for matched employees whose |TotalDiff| exceeds the
	// configured tolerance; Severity grades how far beyond it went.
	Mismatch bool     `json:"mismatch"`
	Severity Severity `json:"severity,omitempty"`
}

// DifferenceFor returns the category difference, zero when absent.
func (c *EmployeeComparison) DifferenceFor(cat Category) float64 {
	return c.CategoryDiffs[cat]
}

// DepartmentSummary rolls employee differences up to one department: totals
// per category per source plus the aggregate difference. Every matched
// employee contributes to exactly one department.
type DepartmentSummary struct {
	Department    string `json:"department"`
	EmployeeCount int    `json:"employee_count"`

	TimesheetByCategory map[Category]float64 `json:"timesheet_by_category"`
	PayrollByCategory   map[Category]float64 `json:"payroll_by_category"`

	TimesheetTotal float64 `json:"timesheet_total"`
	PayrollTotal   float64 `json:"payroll_total"`
	Difference     float64 `json:"difference"`

	MismatchCount int `json:"mismatch_count"`
}

// Statistics is the corpus-level result object.
type Statistics struct {
	TotalEmployees     int `json:"total_employees"`
	MatchedCount       int `json:"matched_count"`
	TimesheetOnlyCount int `json:"timesheet_only_count"`
	PayrollOnlyCount   int `json:"payroll_only_count"`

	TimesheetTotalHours float64 `json:"timesheet_total_hours"`
	PayrollTotalHours   float64 `json:"payroll_total_hours"`
	TotalDifference     float64 `json:"total_difference"`

	// MatchRates maps each configured tolerance tau (absolute hours) to the
	// fraction of matched employees whose |TotalDiff| <= tau.
	MatchRates ToleranceRates `json:"match_rates"`

	// Correlation is the Pearson coefficient between the matched employees'
	// timesheet and payroll totals; RMSE is over the same pairs. Employees
	// present in only one source are excluded from both.
	Correlation float64 `json:"correlation"`
	RMSE        float64 `json:"rmse"`

	FlagCounts     map[FlagKind]int `json:"flag_counts"`
	SeverityCounts map[Severity]int `json:"severity_counts"`

	DepartmentConflicts int           `json:"department_conflicts"`
	Quality             []DataQuality `json:"quality"`
}

// ToleranceRates maps a tolerance in hours to a match-rate fraction.
// encoding/json rejects float map keys, so the keys marshal as their decimal
// string form.
type ToleranceRates map[float64]float64

func (r ToleranceRates) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, len(r))
	for tol, rate := range r {
		out[strconv.FormatFloat(tol, 'g', -1, 64)] = rate
	}
	return json.Marshal(out)
}

func (r *ToleranceRates) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ToleranceRates, len(raw))
	for key, rate := range raw {
		tol, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return fmt.Errorf("tolerance key %q: %w", key, err)
		}
		out[tol] = rate
	}
	*r = out
	return nil
}

// Report is the complete result set of one reconciliation run. It is a pure
// function of the two inputs and the config: the run ID and timestamps live
// with the caller, not here, so identical inputs render identical tables.
type Report struct {
	Employees   []EmployeeComparison `json:"employees"`
	Departments []DepartmentSummary  `json:"departments"`
	Differences []DifferenceRecord   `json:"differences"`
	Flags       []AnomalyFlag        `json:"flags"`
	Statistics  Statistics           `json:"statistics"`
}
