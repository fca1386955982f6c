package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"hours-reconciliation/internal/config"
	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/logging"
	"hours-reconciliation/internal/usecase"
	mock_usecase "hours-reconciliation/internal/usecase/mocks"
)

var (
	week5 = domain.Period{Year: 2024, Week: 5}

	testTimesheetRows = []domain.TimesheetRow{
		{
			StaffNumber: "1001",
			Name:        "Murphy, Anne",
			Department:  "Nursing",
			PayRate:     "14.50",
			Hours:       map[string]string{"Basic": "40:00", "Night Rate": "05:00"},
			Period:      week5,
			SourceFile:  "timesheet-2024-W05.csv",
			Line:        2,
		},
		{
			StaffNumber: "2002",
			Name:        "Byrne, Liam",
			Department:  "Kitchen",
			PayRate:     "12.80",
			Hours:       map[string]string{"Basic": "12"},
			Period:      week5,
			SourceFile:  "timesheet-2024-W05.csv",
			Line:        3,
		},
	}

	testPayrollRows = []domain.PayrollRow{
		{
			Sequence:   "1001",
			Forename:   "Anne",
			Surname:    "Murphy",
			Department: "Nursing",
			Hours:      map[string]string{"Day Rate": "38", "Night Rate": "5"},
			Gross:      map[string]string{"Day Rate": "551.00", "Night Rate": "87.00"},
			SourceFile: "payroll.xlsx",
			Line:       6,
		},
		{
			Sequence:   "3003",
			Forename:   "Sarah",
			Surname:    "Keane",
			Department: "Household",
			Hours:      map[string]string{"Day Rate": "20"},
			Gross:      map[string]string{"Day Rate": "256.00"},
			SourceFile: "payroll.xlsx",
			Line:       7,
		},
	}
)

func TestReconciliationUseCase_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	timesheetPaths := []string{"timesheet-2024-W05.csv"}
	payrollPath := "payroll.xlsx"

	repo := mock_usecase.NewMockSourceRepository(ctrl)
	repo.EXPECT().GetTimesheetRows(ctx, timesheetPaths).Return(testTimesheetRows, nil)
	repo.EXPECT().GetPayrollRows(ctx, payrollPath, gomock.Any(), gomock.Any()).Return(testPayrollRows, nil)

	uc := usecase.NewReconciliationUseCase(repo, config.Default(), logging.Nop())
	report, err := uc.Reconcile(ctx, timesheetPaths, payrollPath)

	assert.NoError(t, err)
	assert.Len(t, report.Employees, 3)

	anne := report.Employees[0]
	assert.Equal(t, int64(1001), anne.Key)
	assert.Equal(t, domain.StatusMatched, anne.Status)
	assert.InDelta(t, 45.0, anne.TimesheetTotal, 1e-9)
	assert.InDelta(t, 43.0, anne.PayrollTotal, 1e-9)
	assert.InDelta(t, -2.0, anne.TotalDiff, 1e-9)
	assert.False(t, anne.Mismatch)

	leaver := report.Employees[1]
	assert.Equal(t, int64(2002), leaver.Key)
	assert.Equal(t, domain.StatusTimesheetOnly, leaver.Status)

	joiner := report.Employees[2]
	assert.Equal(t, int64(3003), joiner.Key)
	assert.Equal(t, domain.StatusPayrollOnly, joiner.Status)

	s := report.Statistics
	assert.Equal(t, 1, s.MatchedCount)
	assert.Equal(t, 1, s.TimesheetOnlyCount)
	assert.Equal(t, 1, s.PayrollOnlyCount)

	// Unmatched employees are excluded from the paired metrics: one matched
	// pair means no correlation and an RMSE equal to its difference.
	assert.Zero(t, s.Correlation)
	assert.InDelta(t, 2.0, s.RMSE, 1e-9)

	assert.Len(t, s.Quality, 2)
	assert.Equal(t, domain.SourceTimesheet, s.Quality[0].Source)
	assert.Equal(t, 2, s.Quality[0].RowsRead)
	assert.Equal(t, domain.SourcePayroll, s.Quality[1].Source)
}

func TestReconciliationUseCase_Reconcile_Deterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	paths := []string{"timesheet-2024-W05.csv"}

	repo := mock_usecase.NewMockSourceRepository(ctrl)
	repo.EXPECT().GetTimesheetRows(ctx, paths).Return(testTimesheetRows, nil).Times(2)
	repo.EXPECT().GetPayrollRows(ctx, "payroll.xlsx", gomock.Any(), gomock.Any()).Return(testPayrollRows, nil).Times(2)

	uc := usecase.NewReconciliationUseCase(repo, config.Default(), logging.Nop())

	first, err := uc.Reconcile(ctx, paths, "payroll.xlsx")
	assert.NoError(t, err)
	second, err := uc.Reconcile(ctx, paths, "payroll.xlsx")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.EmployeeTable(), second.EmployeeTable())
	assert.Equal(t, first.StatisticsTable(), second.StatisticsTable())
}

func TestReconciliationUseCase_Reconcile_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	readFailure := errors.New("read failure")

	t.Run("no timesheet files", func(t *testing.T) {
		repo := mock_usecase.NewMockSourceRepository(ctrl)
		uc := usecase.NewReconciliationUseCase(repo, config.Default(), logging.Nop())

		_, err := uc.Reconcile(ctx, nil, "payroll.xlsx")
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})

	t.Run("timesheet source fails", func(t *testing.T) {
		repo := mock_usecase.NewMockSourceRepository(ctrl)
		repo.EXPECT().GetTimesheetRows(ctx, gomock.Any()).Return(nil, readFailure)
		uc := usecase.NewReconciliationUseCase(repo, config.Default(), logging.Nop())

		_, err := uc.Reconcile(ctx, []string{"a.csv"}, "payroll.xlsx")
		assert.ErrorIs(t, err, readFailure)
	})

	t.Run("payroll source fails", func(t *testing.T) {
		repo := mock_usecase.NewMockSourceRepository(ctrl)
		repo.EXPECT().GetTimesheetRows(ctx, gomock.Any()).Return(testTimesheetRows, nil)
		repo.EXPECT().GetPayrollRows(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, readFailure)
		uc := usecase.NewReconciliationUseCase(repo, config.Default(), logging.Nop())

		_, err := uc.Reconcile(ctx, []string{"a.csv"}, "payroll.xlsx")
		assert.ErrorIs(t, err, readFailure)
	})
}
