package quant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
)

func TestPortfolioMetricsHandComputed(t *testing.T) {
	table := models.AlignedReturns{
		Tickers: []string{"AAPL", "MSFT"},
		Columns: map[string][]float64{
			"AAPL": {0.01, -0.02, 0.03, 0},
			"MSFT": {0.02, 0.01, -0.01, 0.02},
		},
	}
	for i := 0; i < 4; i++ {
		table.Dates = append(table.Dates, day(i))
	}
	weights := map[string]float64{"AAPL": 0.6, "MSFT": 0.4}

	stats, err := PortfolioMetrics(table, weights, DefaultMetricsParams())
	require.NoError(t, err)

	// meanA = 0.005, meanB = 0.01
	wantMean := 0.6*0.005 + 0.4*0.01
	assert.InDelta(t, wantMean, stats.MeanReturn, 1e-9)

	// varA = 0.0013/3, varB = 0.0002, covAB = -0.0005/3
	varA := 0.0013 / 3
	varB := 0.0002
	covAB := -0.0005 / 3
	wantVar := 0.36*varA + 0.16*varB + 2*0.6*0.4*covAB
	assert.InDelta(t, math.Sqrt(wantVar), stats.Volatility, 1e-9)

	wantSharpe := (wantMean - 0.02/252) / math.Sqrt(wantVar) * math.Sqrt(252)
	assert.InDelta(t, wantSharpe, stats.SharpeRatio, 1e-9)

	// AAPL's second day is the deepest peak-to-trough decline.
	assert.InDelta(t, -0.02, stats.MaxDrawdown, 1e-9)
}

func TestPortfolioMetricsWeightMismatch(t *testing.T) {
	table := models.AlignedReturns{
		Tickers: []string{"AAPL", "MSFT"},
		Columns: map[string][]float64{
			"AAPL": {0.01, 0.02},
			"MSFT": {0.01, 0.02},
		},
	}

	_, err := PortfolioMetrics(table, map[string]float64{"AAPL": 1}, DefaultMetricsParams())
	assert.ErrorIs(t, err, models.ErrWeightMismatch)

	_, err = PortfolioMetrics(table, map[string]float64{"AAPL": 0.5, "GOOG": 0.5}, DefaultMetricsParams())
	assert.ErrorIs(t, err, models.ErrWeightMismatch)
}

func TestPortfolioMetricsSingleRow(t *testing.T) {
	table := models.AlignedReturns{
		Dates:   []time.Time{day(0)},
		Tickers: []string{"AAPL"},
		Columns: map[string][]float64{"AAPL": {0.01}},
	}

	stats, err := PortfolioMetrics(table, map[string]float64{"AAPL": 1}, DefaultMetricsParams())
	require.NoError(t, err)

	// variance is undefined for one observation; downstream sanitizes
	assert.InDelta(t, 0.01, stats.MeanReturn, 1e-12)
	assert.True(t, math.IsNaN(stats.Volatility))
	assert.True(t, math.IsNaN(stats.SharpeRatio))
}

func TestCombinedReturns(t *testing.T) {
	table := models.AlignedReturns{
		Tickers: []string{"AAPL", "MSFT"},
		Columns: map[string][]float64{
			"AAPL": {0.01, -0.02},
			"MSFT": {0.03, 0.01},
		},
	}
	combined, err := CombinedReturns(table, map[string]float64{"AAPL": 0.5, "MSFT": 0.5})
	require.NoError(t, err)
	require.Len(t, combined, 2)
	assert.InDelta(t, 0.02, combined[0], 1e-12)
	assert.InDelta(t, -0.005, combined[1], 1e-12)
}

func TestMaxDrawdownNeverPositive(t *testing.T) {
	table := models.AlignedReturns{
		Tickers: []string{"AAPL"},
		Columns: map[string][]float64{"AAPL": {0.05, 0.02, 0.1, 0.01}},
	}
	assert.Equal(t, 0.0, maxDrawdown(table))
}
