// Package domain holds the core types of the hours reconciliation pipeline:
// the category taxonomy, normalized hour tables, match partitions, difference
// records, anomaly flags and the error taxonomy shared by every layer.
package domain

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable means a required source file or sheet could not be
// loaded at all. This is fatal to the run and is reported verbatim to the
// caller; the core never falls back to fabricated data.
var ErrSourceUnavailable = errors.New("source unavailable")

// FormatError marks a row-level malformed hour string or numeric field. The
// offending row is logged, excluded and counted; it never aborts the run and
// is never silently zeroed.
type FormatError struct {
	File   string
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s line %d: column %q value %q: %s", e.File, e.Line, e.Column, e.Value, e.Reason)
}

// IdentityError marks a row whose identity key is missing or non-numeric.
// The row is excluded from matching but retained in the unidentifiable count.
type IdentityError struct {
	File  string
	Line  int
	Value string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("%s line %d: identity key %q is missing or non-numeric", e.File, e.Line, e.Value)
}
