package quant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func priceSeries(ticker string, closes ...float64) models.PriceSeries {
	s := models.PriceSeries{Ticker: ticker}
	for i, c := range closes {
		s.Points = append(s.Points, models.PricePoint{Date: day(i), Close: c})
	}
	return s
}

func TestDailyReturns(t *testing.T) {
	s := priceSeries("AAPL", 100, 110, 99)
	rs, err := DailyReturns(s)
	require.NoError(t, err)

	require.Len(t, rs.Points, s.Len()-1)
	assert.InDelta(t, 0.1, rs.Points[0].Return, 1e-12)
	assert.InDelta(t, 99.0/110.0-1, rs.Points[1].Return, 1e-12)

	// dates are a suffix of the source dates
	for i, p := range rs.Points {
		assert.True(t, p.Date.Equal(s.Points[i+1].Date))
	}
}

func TestDailyReturnsInsufficientData(t *testing.T) {
	_, err := DailyReturns(priceSeries("AAPL", 100))
	assert.ErrorIs(t, err, models.ErrInsufficientData)

	_, err = DailyReturns(models.PriceSeries{Ticker: "AAPL"})
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}
