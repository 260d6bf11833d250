package quant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
)

func returnSeries(ticker string, start int, values ...float64) models.ReturnSeries {
	s := models.ReturnSeries{Ticker: ticker}
	for i, v := range values {
		s.Points = append(s.Points, models.ReturnPoint{Date: day(start + i), Return: v})
	}
	return s
}

func TestAlignIntersection(t *testing.T) {
	// A has days 0..2, B has days 1..3 with a NaN on day 2.
	// Only day 1 survives.
	series := map[string]models.ReturnSeries{
		"AAPL": returnSeries("AAPL", 0, 0.01, 0.02, 0.03),
		"MSFT": returnSeries("MSFT", 1, -0.01, math.NaN(), 0.04),
	}

	table, err := Align(series)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, table.Tickers)
	require.Equal(t, 1, table.Rows())
	assert.True(t, table.Dates[0].Equal(day(1)))
	assert.Equal(t, []float64{0.02}, table.Columns["AAPL"])
	assert.Equal(t, []float64{-0.01}, table.Columns["MSFT"])
}

func TestAlignChronological(t *testing.T) {
	series := map[string]models.ReturnSeries{
		"AAPL": returnSeries("AAPL", 0, 0.01, 0.02, 0.03, 0.04),
		"MSFT": returnSeries("MSFT", 0, 0.05, 0.06, 0.07, 0.08),
	}

	table, err := Align(series)
	require.NoError(t, err)
	require.Equal(t, 4, table.Rows())
	for i := 1; i < len(table.Dates); i++ {
		assert.True(t, table.Dates[i].After(table.Dates[i-1]))
	}
}

func TestAlignIntradayTimestampsJoinByDay(t *testing.T) {
	a := models.ReturnSeries{Ticker: "AAPL", Points: []models.ReturnPoint{
		{Date: day(0).Add(14*time.Hour + 30*time.Minute), Return: 0.01},
	}}
	b := models.ReturnSeries{Ticker: "MSFT", Points: []models.ReturnPoint{
		{Date: day(0).Add(21 * time.Hour), Return: 0.02},
	}}

	table, err := Align(map[string]models.ReturnSeries{"AAPL": a, "MSFT": b})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Rows())
}

func TestAlignEmpty(t *testing.T) {
	_, err := Align(nil)
	assert.ErrorIs(t, err, models.ErrEmptyAlignment)

	// disjoint dates
	series := map[string]models.ReturnSeries{
		"AAPL": returnSeries("AAPL", 0, 0.01, 0.02),
		"MSFT": returnSeries("MSFT", 10, 0.03, 0.04),
	}
	_, err = Align(series)
	assert.ErrorIs(t, err, models.ErrEmptyAlignment)
}
