package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
)

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2, out[2], 1e-12)
	assert.InDelta(t, 3, out[3], 1e-12)
	assert.InDelta(t, 4, out[4], 1e-12)
}

func TestSMAShortSeries(t *testing.T) {
	out := SMA([]float64{1, 2, 3}, 50)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRollingStd(t *testing.T) {
	out := RollingStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	// sample std of the classic 2,4,4,4,5,5,7,9 set
	assert.InDelta(t, math.Sqrt(32.0/7), out[7], 1e-12)
	for i := 0; i < 7; i++ {
		assert.True(t, math.IsNaN(out[i]))
	}
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{44, 44.5, 43.8, 44.2, 44.9, 44.1, 45, 45.3, 44.8, 45.1,
		45.6, 45.2, 46, 45.7, 46.2, 46.5, 45.9, 46.3, 46.8, 46.4}
	out := RSI(closes, 14)
	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d", i)
	}
	for i := 14; i < len(out); i++ {
		require.False(t, math.IsNaN(out[i]), "index %d", i)
		assert.GreaterOrEqual(t, out[i], 0.0)
		assert.LessOrEqual(t, out[i], 100.0)
	}
}

func TestRSIMonotonicSaturates(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	out := RSI(closes, 14)
	for i := 14; i < len(out); i++ {
		assert.InDelta(t, 100, out[i], 1e-12)
	}
}

func TestRSIFlatUndefined(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	out := RSI(closes, 14)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEMASeed(t *testing.T) {
	out := EMA([]float64{10, 20}, 9)
	alpha := 2.0 / 10
	assert.InDelta(t, 10, out[0], 1e-12)
	assert.InDelta(t, alpha*20+(1-alpha)*10, out[1], 1e-12)
}

func TestMACDDefinedFromStart(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	macd, signal := MACD(closes)
	require.Len(t, macd, 40)
	require.Len(t, signal, 40)
	assert.InDelta(t, 0, macd[0], 1e-12)
	// fast EMA tracks a rising series more closely than the slow one
	for i := 5; i < 40; i++ {
		assert.Greater(t, macd[i], 0.0)
		assert.False(t, math.IsNaN(signal[i]))
	}
}

func TestBollingerBands(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 105, 104, 106, 108, 107, 109,
		110, 108, 111, 113, 112, 114, 115, 113, 116, 118, 117, 119}
	upper, lower := Bollinger(closes)
	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(upper[i]))
		assert.True(t, math.IsNaN(lower[i]))
	}
	for i := 19; i < len(closes); i++ {
		assert.Greater(t, upper[i], lower[i])
	}
}

func TestBeta(t *testing.T) {
	bench := returnSeries("^GSPC", 0, 0.01, -0.02, 0.015, 0.005, -0.01)
	stock := models.ReturnSeries{Ticker: "AAPL"}
	for i, p := range bench.Points {
		stock.Points = append(stock.Points, models.ReturnPoint{Date: day(i), Return: 2 * p.Return})
	}
	assert.InDelta(t, 2, Beta(stock, bench), 1e-9)
}

func TestBetaNoOverlap(t *testing.T) {
	stock := returnSeries("AAPL", 0, 0.01, 0.02)
	bench := returnSeries("^GSPC", 10, 0.01, 0.02)
	assert.True(t, math.IsNaN(Beta(stock, bench)))
}
