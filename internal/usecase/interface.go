package usecase

import (
	"context"

	"hours-reconciliation/internal/domain"
)

// SourceRepository defines the interface for fetching raw source rows.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go SourceRepository
type SourceRepository interface {
	GetTimesheetRows(ctx context.Context, paths []string) ([]domain.TimesheetRow, error)
	GetPayrollRows(ctx context.Context, path, sheet string, headerRow int) ([]domain.PayrollRow, error)
}
