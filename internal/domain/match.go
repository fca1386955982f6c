package domain

// MatchStatus records which sources an employee identity appeared in.
type MatchStatus string

const (
	StatusMatched       MatchStatus = "matched"
	StatusTimesheetOnly MatchStatus = "timesheet_only"
	StatusPayrollOnly   MatchStatus = "payroll_only"
)

// MatchResult partitions the full identity set observed across both sources.
// The three slices are disjoint, sorted ascending, and their union is every
// identity seen in either source. Membership is determined solely by key
// presence, never by hour values and never by name-string comparison.
type MatchResult struct {
	Matched       []int64 `json:"matched"`
	TimesheetOnly []int64 `json:"timesheet_only"`
	PayrollOnly   []int64 `json:"payroll_only"`
}

// Total is the size of the full identity set.
func (m MatchResult) Total() int {
	return len(m.Matched) + len(m.TimesheetOnly) + len(m.PayrollOnly)
}

// Status returns the partition a key landed in. The zero MatchStatus is never
// returned for a key that was observed in either source.
func (m MatchResult) Status(key int64) MatchStatus {
	for _, k := range m.Matched {
		if k == key {
			return StatusMatched
		}
	}
	for _, k := range m.TimesheetOnly {
		if k == key {
			return StatusTimesheetOnly
		}
	}
	return StatusPayrollOnly
}

// MatchedPair carries the two normalized records for one matched identity.
type MatchedPair struct {
	Key       int64
	Timesheet *EmployeeHours
	Payroll   *EmployeeHours
}
