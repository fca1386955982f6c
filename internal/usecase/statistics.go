package usecase

import (
	"math"

	"hours-reconciliation/internal/domain"
)

// pearson computes the correlation coefficient between the paired hour
// totals. Fewer than two pairs, or a zero-variance side, yields 0 rather
// than NaN so downstream arithmetic stays total.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// rmse computes the root-mean-square error between the paired hour totals.
func rmse(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) == 0 {
		return 0
	}
	var sum float64
	for i := range xs {
		d := ys[i] - xs[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// matchRates computes, per tolerance tau, the fraction of matched employees
// whose |total difference| <= tau.
func matchRates(diffs []float64, ladder []float64) map[float64]float64 {
	rates := make(map[float64]float64, len(ladder))
	for _, tol := range ladder {
		if len(diffs) == 0 {
			rates[tol] = 0
			continue
		}
		within := 0
		for _, d := range diffs {
			if math.Abs(d) <= tol {
				within++
			}
		}
		rates[tol] = float64(within) / float64(len(diffs))
	}
	return rates
}

// severityFor grades an absolute total difference against the configured
// tiers. At or below the low bound the difference is not a mismatch.
func severityFor(absDiff float64, tiers severityBounds) domain.Severity {
	switch {
	case absDiff > tiers.high:
		return domain.SeverityHigh
	case absDiff > tiers.medium:
		return domain.SeverityMedium
	case absDiff > tiers.low:
		return domain.SeverityLow
	default:
		return domain.SeverityNone
	}
}

type severityBounds struct {
	low, medium, high float64
}
