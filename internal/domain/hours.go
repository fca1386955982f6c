package domain

import (
	"fmt"
	"sort"
)

// SourceSystem identifies which export an hour figure came from.
type SourceSystem string

const (
	SourceTimesheet SourceSystem = "timesheet"
	SourcePayroll   SourceSystem = "payroll"
)

// Period is a year+week marker carried by the weekly timesheet exports.
type Period struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// String renders the period in the exports' "2024-W05" form.
func (p Period) String() string {
	return fmt.Sprintf("%d-W%02d", p.Year, p.Week)
}

// Before reports whether p precedes q in calendar order.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Week < q.Week
}

// EmployeeIdentity is the stable numeric key for one employee plus a display
// name. The key appears as "Staff Number" in the timesheet export and
// "Sequence" in the payroll export. It is set during normalization and never
// changes afterwards.
type EmployeeIdentity struct {
	Key  int64  `json:"key"`
	Name string `json:"name"`
}

// EmployeeHours is the normalized per-employee view of one source: hours per
// canonical category, plus whatever side data that source carries.
// A category an employee never worked is simply absent from Hours and reads
// as zero; arithmetic must never see a NaN.
type EmployeeHours struct {
	Identity   EmployeeIdentity
	Department string

	// Hours holds decimal hours per category, summed across all periods.
	Hours map[Category]float64

	// PeriodTotals holds the per-week hour totals (timesheet source only).
	PeriodTotals map[Period]float64

	// Gross holds gross pay per category (payroll source only).
	Gross map[Category]float64

	// HasPayRate records whether any source row for this employee carried a
	// pay-rate figure (timesheet source only).
	HasPayRate bool
}

// HoursFor returns the employee's hours in a category, zero when absent.
func (e *EmployeeHours) HoursFor(c Category) float64 {
	return e.Hours[c]
}

// Total is the employee's hour total across all categories. It is derived on
// every call so it can never drift from the underlying records.
func (e *EmployeeHours) Total() float64 {
	var sum float64
	for _, h := range e.Hours {
		sum += h
	}
	return sum
}

// AddHours accumulates hours into a category. Figures from different periods
// sum together rather than overwrite.
func (e *EmployeeHours) AddHours(c Category, hours float64) {
	if e.Hours == nil {
		e.Hours = make(map[Category]float64)
	}
	e.Hours[c] += hours
}

// HourTable is the canonical normalized form of one source: employees keyed
// by identity. It is immutable once normalization completes.
type HourTable struct {
	Source    SourceSystem
	Employees map[int64]*EmployeeHours

	// Periods are the distinct year+week markers observed in the source,
	// sorted ascending. Empty for sources without period markers.
	Periods []Period
}

// NewHourTable creates an empty table for a source.
func NewHourTable(source SourceSystem) *HourTable {
	return &HourTable{
		Source:    source,
		Employees: make(map[int64]*EmployeeHours),
	}
}

// Employee returns the record for a key, creating it on first use.
func (t *HourTable) Employee(key int64, name string) *EmployeeHours {
	if e, ok := t.Employees[key]; ok {
		if e.Identity.Name == "" && name != "" {
			e.Identity.Name = name
		}
		return e
	}
	e := &EmployeeHours{
		Identity: EmployeeIdentity{Key: key, Name: name},
		Hours:    make(map[Category]float64),
	}
	t.Employees[key] = e
	return e
}

// SortedKeys returns all identity keys ascending. Every emit path iterates via
// this, so two runs over identical input produce identical output.
func (t *HourTable) SortedKeys() []int64 {
	keys := make([]int64, 0, len(t.Employees))
	for k := range t.Employees {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// TotalHours is the sum of all hours in the table.
func (t *HourTable) TotalHours() float64 {
	var sum float64
	for _, e := range t.Employees {
		sum += e.Total()
	}
	return sum
}

// DataQuality counts the row-level problems a normalization pass recovered
// from. Malformed rows are excluded and counted here, never silently zeroed.
type DataQuality struct {
	Source SourceSystem `json:"source"`

	// RowsRead is the number of data rows consumed from the raw source.
	RowsRead int `json:"rows_read"`

	// ExcludedRows counts rows dropped for malformed hour or numeric fields.
	ExcludedRows int `json:"excluded_rows"`

	// UnidentifiableRows counts rows whose identity key was missing or
	// non-numeric. They are excluded from matching but still reported.
	UnidentifiableRows int `json:"unidentifiable_rows"`

	// UnmappedLabels counts hour cells dropped per unrecognised column label.
	UnmappedLabels map[string]int `json:"unmapped_labels,omitempty"`
}

// RecordUnmappedLabel notes one dropped cell under an unrecognised label.
func (q *DataQuality) RecordUnmappedLabel(label string) {
	if q.UnmappedLabels == nil {
		q.UnmappedLabels = make(map[string]int)
	}
	q.UnmappedLabels[label]++
}

// UnmappedTotal is the total number of dropped cells across all labels.
func (q *DataQuality) UnmappedTotal() int {
	var n int
	for _, c := range q.UnmappedLabels {
		n += c
	}
	return n
}
