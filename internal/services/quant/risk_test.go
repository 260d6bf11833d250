package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
)

func TestHistoricalVaRQuantileIndex(t *testing.T) {
	// 100 returns: -0.50, -0.49, ..., 0.49
	returns := make([]float64, 100)
	for i := range returns {
		returns[i] = float64(i-50) / 100
	}

	// 95% confidence: idx = floor(0.05*100) = 5 -> sorted[5] = -0.45
	stats, err := HistoricalVaR(returns, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, -0.45, stats.ValueAtRisk, 1e-12)

	// ES = mean of the five returns below the index
	wantES := (-0.50 - 0.49 - 0.48 - 0.47 - 0.46) / 5
	assert.InDelta(t, wantES, stats.ExpectedShortfall, 1e-12)
}

func TestHistoricalVaRMonotoneInConfidence(t *testing.T) {
	returns := []float64{0.03, -0.01, 0.02, -0.04, 0.01, -0.02, 0.05, 0, -0.03, 0.02}

	prev := math.Inf(-1)
	for _, c := range []float64{0.99, 0.95, 0.9, 0.8, 0.5} {
		stats, err := HistoricalVaR(returns, c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, stats.ValueAtRisk, prev, "confidence %v", c)
		prev = stats.ValueAtRisk
	}
}

func TestHistoricalVaRSmallSample(t *testing.T) {
	// idx clamps to 0; no tail below it, so ES is undefined
	stats, err := HistoricalVaR([]float64{-0.01, 0.02}, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, -0.01, stats.ValueAtRisk, 1e-12)
	assert.True(t, math.IsNaN(stats.ExpectedShortfall))
}

func TestHistoricalVaRInputUntouched(t *testing.T) {
	returns := []float64{0.02, -0.03, 0.01}
	_, err := HistoricalVaR(returns, 0.95)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.02, -0.03, 0.01}, returns)
}

func TestHistoricalVaRNoData(t *testing.T) {
	_, err := HistoricalVaR(nil, 0.95)
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}
