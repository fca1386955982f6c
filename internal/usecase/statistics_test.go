package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hours-reconciliation/internal/domain"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{name: "perfect positive", xs: []float64{1, 2, 3}, ys: []float64{10, 20, 30}, want: 1},
		{name: "perfect negative", xs: []float64{1, 2, 3}, ys: []float64{3, 2, 1}, want: -1},
		{name: "single pair yields zero", xs: []float64{5}, ys: []float64{5}, want: 0},
		{name: "empty yields zero", xs: nil, ys: nil, want: 0},
		{name: "zero variance yields zero, not NaN", xs: []float64{4, 4, 4}, ys: []float64{1, 2, 3}, want: 0},
		{name: "length mismatch yields zero", xs: []float64{1, 2}, ys: []float64{1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pearson(tt.xs, tt.ys), 1e-9)
		})
	}
}

func TestRMSE(t *testing.T) {
	assert.InDelta(t, 0.0, rmse([]float64{1, 2}, []float64{1, 2}), 1e-9)
	assert.InDelta(t, 2.0, rmse([]float64{40, 40}, []float64{38, 42}), 1e-9)
	assert.InDelta(t, 0.0, rmse(nil, nil), 1e-9)
}

func TestMatchRates(t *testing.T) {
	diffs := []float64{0.5, -1.5, 3, -12}
	rates := matchRates(diffs, []float64{1, 2, 5, 10, 20})

	assert.InDelta(t, 0.25, rates[1], 1e-9)
	assert.InDelta(t, 0.50, rates[2], 1e-9)
	assert.InDelta(t, 0.75, rates[5], 1e-9)
	assert.InDelta(t, 0.75, rates[10], 1e-9)
	assert.InDelta(t, 1.00, rates[20], 1e-9)
}

func TestMatchRates_NoMatchedEmployees(t *testing.T) {
	rates := matchRates(nil, []float64{1, 2})
	assert.Zero(t, rates[1])
	assert.Zero(t, rates[2])
}

func TestSeverityFor(t *testing.T) {
	tiers := severityBounds{low: 2, medium: 5, high: 20}

	tests := []struct {
		absDiff float64
		want    domain.Severity
	}{
		{0, domain.SeverityNone},
		{2, domain.SeverityNone},
		{2.1, domain.SeverityLow},
		{5, domain.SeverityLow},
		{5.1, domain.SeverityMedium},
		{20, domain.SeverityMedium},
		{20.1, domain.SeverityHigh},
		{100, domain.SeverityHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, severityFor(tt.absDiff, tiers), "absDiff=%g", tt.absDiff)
	}
}
