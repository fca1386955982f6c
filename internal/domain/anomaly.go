package domain

// FlagKind is the closed set of anomaly categories the classifier can emit.
type FlagKind string

const (
	FlagExcessiveHours     FlagKind = "ExcessiveHours"
	FlagOvertimeInstance   FlagKind = "OvertimeInstance"
	FlagMissingPayRate     FlagKind = "MissingPayRate"
	FlagInactiveStaff      FlagKind = "InactiveStaff"
	FlagTimePeriodMismatch FlagKind = "TimePeriodMismatch"
)

// Severity grades a flag or a matched-employee mismatch for triage.
type Severity string

const (
	SeverityNone   Severity = ""
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// AnomalyFlag is one classified, severity-tagged signal for human review.
// Flags are regenerated on every run from the computed tables; they have no
// lifecycle of their own.
type AnomalyFlag struct {
	Kind     FlagKind `json:"kind"`
	Severity Severity `json:"severity"`

	// EmployeeKey is zero for corpus-level flags such as TimePeriodMismatch.
	EmployeeKey  int64  `json:"employee_key,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	Department   string `json:"department,omitempty"`

	// Period is set for per-week flags, e.g. a single overtime instance.
	Period string `json:"period,omitempty"`

	// Value is the measured quantity the rule fired on (weekly hours, span
	// ratio, ...).
	Value float64 `json:"value"`

	// Evidence is a human-readable account of why the flag was raised.
	Evidence string `json:"evidence"`
}
