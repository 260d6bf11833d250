package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
)

func zigzagSeries(ticker string, n int) models.PriceSeries {
	s := models.PriceSeries{Ticker: ticker}
	price := 100.0
	for i := 0; i < n; i++ {
		if i%3 == 0 {
			price *= 1.01
		} else {
			price *= 0.997
		}
		s.Points = append(s.Points, models.PricePoint{Date: day(i), Close: price})
	}
	return s
}

func TestBuildSamples(t *testing.T) {
	series := zigzagSeries("AAPL", 60)
	samples := BuildSamples(series)

	// slow SMA defines rows from index 49; the final row has no label
	require.Len(t, samples, 60-FeatureSMASlow)

	closes := series.Closes()
	for _, s := range samples {
		assert.Equal(t, "AAPL", s.Ticker)
		assert.False(t, math.IsNaN(s.SMA10))
		assert.False(t, math.IsNaN(s.SMA50))
		assert.GreaterOrEqual(t, s.RSI, 0.0)
		assert.LessOrEqual(t, s.RSI, 100.0)
	}

	// spot check the first sample's label against the raw closes
	i := FeatureSMASlow - 1
	assert.True(t, samples[0].Date.Equal(series.Points[i].Date))
	wantLabel := 0
	if closes[i+1] > closes[i] {
		wantLabel = 1
	}
	assert.Equal(t, wantLabel, samples[0].Label)
}

func TestBuildSamplesShortHistory(t *testing.T) {
	assert.Empty(t, BuildSamples(zigzagSeries("AAPL", FeatureSMASlow)))
	assert.Empty(t, BuildSamples(models.PriceSeries{Ticker: "AAPL"}))
}

func TestBuildDatasetPerTickerIsolation(t *testing.T) {
	histories := map[string]models.PriceSeries{
		"MSFT": zigzagSeries("MSFT", 60),
		"AAPL": zigzagSeries("AAPL", 55),
	}
	out := BuildDataset(histories)

	require.Len(t, out, (55-FeatureSMASlow)+(60-FeatureSMASlow))
	// deterministic ticker order, never interleaved
	assert.Equal(t, "AAPL", out[0].Ticker)
	assert.Equal(t, "MSFT", out[len(out)-1].Ticker)
	for i := 1; i < len(out); i++ {
		if out[i].Ticker == out[i-1].Ticker {
			assert.True(t, out[i].Date.After(out[i-1].Date))
		}
	}
}

func TestLatestFeatures(t *testing.T) {
	v := LatestFeatures(zigzagSeries("AAPL", 60))
	require.NotNil(t, v.SMA10)
	require.NotNil(t, v.SMA50)
	require.NotNil(t, v.RSI)
	assert.True(t, v.Complete())
}

func TestLatestFeaturesShortHistory(t *testing.T) {
	v := LatestFeatures(zigzagSeries("AAPL", 30))
	assert.NotNil(t, v.SMA10)
	assert.Nil(t, v.SMA50)
	assert.False(t, v.Complete())
}
