package quant

import (
	"math"
	"sort"

	"RiskPulse/internal/domain/models"
)

// RiskStats holds historical-simulation VaR and ES. ExpectedShortfall
// is NaN when the VaR index leaves no tail to average.
type RiskStats struct {
	ValueAtRisk       float64
	ExpectedShortfall float64
}

// HistoricalVaR estimates Value-at-Risk and Expected Shortfall from a
// portfolio's combined daily returns by empirical quantile: sort
// ascending, index floor((1-confidence)*N) clamped to [0, N-1]. ES is
// the mean of the returns strictly below the VaR index. No
// distributional assumption is made.
func HistoricalVaR(returns []float64, confidence float64) (RiskStats, error) {
	n := len(returns)
	if n == 0 {
		return RiskStats{}, models.ErrInsufficientData
	}

	sorted := make([]float64, n)
	copy(sorted, returns)
	sort.Float64s(sorted)

	idx := int(math.Floor((1 - confidence) * float64(n)))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}

	es := math.NaN()
	if idx > 0 {
		es = mean(sorted[:idx])
	}

	return RiskStats{ValueAtRisk: sorted[idx], ExpectedShortfall: es}, nil
}
