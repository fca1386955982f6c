package domain

// Sign convention, applied uniformly everywhere a difference is computed or
// reported: Difference = payroll hours - timesheet hours. A positive value
// means payroll paid more hours than the timesheets recorded.

// DifferenceRecord is one computed difference for a matched identity, either
// for a single category or for the employee total. Records are derived fresh
// on every run and never mutated in place.
type DifferenceRecord struct {
	EmployeeKey int64    `json:"employee_key"`
	Category    Category `json:"category"`

	// IsTotal marks the employee-total record; Category is meaningless then.
	IsTotal bool `json:"is_total"`

	TimesheetHours float64 `json:"timesheet_hours"`
	PayrollHours   float64 `json:"payroll_hours"`

	// Value is PayrollHours - TimesheetHours.
	Value float64 `json:"value"`
}
