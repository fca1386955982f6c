package domain

// TimesheetRow is one raw row from a weekly timesheet CSV export, before any
// normalization. All values are kept as read; conversion and validation are
// the normalizer's job so a bad cell can be excluded and counted rather than
// aborting the file read.
type TimesheetRow struct {
	StaffNumber string
	Name        string
	Department  string
	PayRate     string

	// Hours maps the raw column label to the raw cell value, which may be
	// "HH:MM" or decimal.
	Hours map[string]string

	Period     Period
	SourceFile string
	Line       int
}

// PayrollRow is one raw row from the payroll Excel export. The export names
// its categories in a single header row with paired "<Category> Hrs" and
// "<Category> Gross" columns.
type PayrollRow struct {
	Sequence   string
	Forename   string
	Surname    string
	Department string

	// Hours and Gross map the base category label (pair suffix stripped) to
	// the raw cell values.
	Hours map[string]string
	Gross map[string]string

	SourceFile string
	Line       int
}

// FullName joins the payroll row's split name fields for display.
func (r PayrollRow) FullName() string {
	switch {
	case r.Forename == "":
		return r.Surname
	case r.Surname == "":
		return r.Forename
	default:
		return r.Forename + " " + r.Surname
	}
}
