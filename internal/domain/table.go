package domain

import (
	"fmt"
	"sort"
	"strconv"
)

// Table is the rows+named-columns form every downstream consumer persists
// (CSV, spreadsheet, HTTP). Nothing in the core depends on how a consumer
// renders it.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EmployeeTable renders the employee-level comparison. Column layout:
// identity, name, department, per-category hours for both sources with the
// category difference, then the totals and triage columns. The difference
// columns follow the documented payroll - timesheet convention.
func (r *Report) EmployeeTable() Table {
	cols := []string{"Staff Number", "Employee Name", "Department", "Match Status"}
	for _, c := range Categories() {
		cols = append(cols,
			c.String()+" (Timesheet)",
			c.String()+" (Payroll)",
			c.String()+" Diff",
		)
	}
	cols = append(cols, "Timesheet Total", "Payroll Total", "Total Diff", "Mismatch", "Severity")

	t := Table{Name: "Hours Comparison", Columns: cols}
	for _, e := range r.Employees {
		row := []string{
			strconv.FormatInt(e.Key, 10),
			e.Name,
			e.Department,
			string(e.Status),
		}
		for _, c := range Categories() {
			row = append(row,
				formatHours(e.TimesheetHours[c]),
				formatHours(e.PayrollHours[c]),
				formatHours(e.CategoryDiffs[c]),
			)
		}
		row = append(row,
			formatHours(e.TimesheetTotal),
			formatHours(e.PayrollTotal),
			formatHours(e.TotalDiff),
			strconv.FormatBool(e.Mismatch),
			string(e.Severity),
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// DepartmentTable renders the department rollup.
func (r *Report) DepartmentTable() Table {
	cols := []string{"Department", "Employee Count"}
	for _, c := range Categories() {
		cols = append(cols, c.String()+" (Timesheet)", c.String()+" (Payroll)")
	}
	cols = append(cols, "Timesheet Total", "Payroll Total", "Total Diff", "Employees with Mismatches")

	t := Table{Name: "Department Summary", Columns: cols}
	for _, d := range r.Departments {
		row := []string{d.Department, strconv.Itoa(d.EmployeeCount)}
		for _, c := range Categories() {
			row = append(row, formatHours(d.TimesheetByCategory[c]), formatHours(d.PayrollByCategory[c]))
		}
		row = append(row,
			formatHours(d.TimesheetTotal),
			formatHours(d.PayrollTotal),
			formatHours(d.Difference),
			strconv.Itoa(d.MismatchCount),
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FlagTable renders the anomaly flags.
func (r *Report) FlagTable() Table {
	t := Table{
		Name:    "Anomalies",
		Columns: []string{"Kind", "Severity", "Staff Number", "Employee Name", "Department", "Period", "Value", "Evidence"},
	}
	for _, f := range r.Flags {
		key := ""
		if f.EmployeeKey != 0 {
			key = strconv.FormatInt(f.EmployeeKey, 10)
		}
		t.Rows = append(t.Rows, []string{
			string(f.Kind),
			string(f.Severity),
			key,
			f.EmployeeName,
			f.Department,
			f.Period,
			formatHours(f.Value),
			f.Evidence,
		})
	}
	return t
}

// StatisticsTable renders the corpus statistics as metric/value pairs, in a
// fixed order so repeated runs emit byte-identical output.
func (r *Report) StatisticsTable() Table {
	s := r.Statistics
	t := Table{Name: "Summary Statistics", Columns: []string{"Metric", "Value"}}

	add := func(metric, value string) {
		t.Rows = append(t.Rows, []string{metric, value})
	}

	add("Total Employees", strconv.Itoa(s.TotalEmployees))
	add("Matched Employees", strconv.Itoa(s.MatchedCount))
	add("Timesheet Only", strconv.Itoa(s.TimesheetOnlyCount))
	add("Payroll Only", strconv.Itoa(s.PayrollOnlyCount))
	add("Total Timesheet Hours", formatHours(s.TimesheetTotalHours))
	add("Total Payroll Hours", formatHours(s.PayrollTotalHours))
	add("Total Difference", formatHours(s.TotalDifference))
	add("Correlation", strconv.FormatFloat(s.Correlation, 'f', 4, 64))
	add("RMSE", strconv.FormatFloat(s.RMSE, 'f', 4, 64))

	tolerances := make([]float64, 0, len(s.MatchRates))
	for tol := range s.MatchRates {
		tolerances = append(tolerances, tol)
	}
	sort.Float64s(tolerances)
	for _, tol := range tolerances {
		add(fmt.Sprintf("Match Rate (<=%gh)", tol), strconv.FormatFloat(s.MatchRates[tol], 'f', 4, 64))
	}

	for _, kind := range []FlagKind{FlagExcessiveHours, FlagOvertimeInstance, FlagMissingPayRate, FlagInactiveStaff, FlagTimePeriodMismatch} {
		add("Flags: "+string(kind), strconv.Itoa(s.FlagCounts[kind]))
	}
	add("Department Conflicts", strconv.Itoa(s.DepartmentConflicts))

	for _, q := range s.Quality {
		add(fmt.Sprintf("Rows Read (%s)", q.Source), strconv.Itoa(q.RowsRead))
		add(fmt.Sprintf("Excluded Rows (%s)", q.Source), strconv.Itoa(q.ExcludedRows))
		add(fmt.Sprintf("Unidentifiable Rows (%s)", q.Source), strconv.Itoa(q.UnidentifiableRows))
		add(fmt.Sprintf("Unmapped Cells (%s)", q.Source), strconv.Itoa(q.UnmappedTotal()))
	}
	return t
}
