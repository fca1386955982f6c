// Package usecase implements the reconciliation core: normalizing the two
// raw exports into canonical hour tables, matching employee identities,
// computing differences and statistics, and classifying anomalies. The whole
// pipeline is a pure function of its inputs and configuration. It owns no
// state between runs, so callers may memoize results keyed on input.
package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"hours-reconciliation/internal/config"
	"hours-reconciliation/internal/domain"
)

// ReconciliationUseCase orchestrates the reconciliation pipeline.
type ReconciliationUseCase struct {
	repo SourceRepository
	cfg  *config.Config
	log  zerolog.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo SourceRepository, cfg *config.Config, log zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{repo: repo, cfg: cfg, log: log}
}

// Reconcile runs the full pipeline: load both sources, normalize, match,
// compute differences and classify anomalies. Row-level problems are
// recovered and counted; a source that cannot be loaded at all is fatal and
// returned verbatim.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, timesheetPaths []string, payrollPath string) (*domain.Report, error) {
	if len(timesheetPaths) == 0 {
		return nil, fmt.Errorf("%w: no timesheet files given", domain.ErrSourceUnavailable)
	}

	timesheetRows, err := uc.repo.GetTimesheetRows(ctx, timesheetPaths)
	if err != nil {
		return nil, fmt.Errorf("could not get timesheet rows: %w", err)
	}
	payrollRows, err := uc.repo.GetPayrollRows(ctx, payrollPath, uc.cfg.Sources.PayrollSheet, uc.cfg.Sources.PayrollHeaderRow)
	if err != nil {
		return nil, fmt.Errorf("could not get payroll rows: %w", err)
	}

	normalizer := NewNormalizer(uc.log)
	timesheet, tsQuality := normalizer.NormalizeTimesheet(timesheetRows)
	payroll, prQuality := normalizer.NormalizePayroll(payrollRows)

	uc.log.Info().
		Int("timesheet_rows", tsQuality.RowsRead).
		Int("payroll_rows", prQuality.RowsRead).
		Int("timesheet_employees", len(timesheet.Employees)).
		Int("payroll_employees", len(payroll.Employees)).
		Msg("sources normalized")

	match := Match(timesheet, payroll)

	engine := NewEngine(uc.cfg.Reconciliation)
	report := engine.Reconcile(timesheet, payroll, match)

	classifier := NewClassifier(uc.cfg.Thresholds)
	report.Flags = classifier.Classify(timesheet, payroll, uc.cfg.Sources.PayrollWeeks)

	report.Statistics.Quality = []domain.DataQuality{tsQuality, prQuality}
	report.Statistics.FlagCounts = make(map[domain.FlagKind]int)
	report.Statistics.SeverityCounts = make(map[domain.Severity]int)
	for _, f := range report.Flags {
		report.Statistics.FlagCounts[f.Kind]++
		report.Statistics.SeverityCounts[f.Severity]++
	}

	uc.log.Info().
		Int("matched", report.Statistics.MatchedCount).
		Int("timesheet_only", report.Statistics.TimesheetOnlyCount).
		Int("payroll_only", report.Statistics.PayrollOnlyCount).
		Int("flags", len(report.Flags)).
		Msg("reconciliation complete")

	return report, nil
}
