package quant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	require.NotNil(t, Sanitize(1.5))
	assert.Equal(t, 1.5, *Sanitize(1.5))
	assert.Nil(t, Sanitize(math.NaN()))
	assert.Nil(t, Sanitize(math.Inf(1)))
	assert.Nil(t, Sanitize(math.Inf(-1)))
}

func TestSanitizeSeriesKeepsPositions(t *testing.T) {
	out := SanitizeSeries([]float64{1, math.NaN(), 3})
	require.Len(t, out, 3)
	assert.NotNil(t, out[0])
	assert.Nil(t, out[1])
	assert.NotNil(t, out[2])
}

func TestTrimSeries(t *testing.T) {
	dates := []time.Time{day(0), day(1), day(2)}
	values := []float64{0.1, math.NaN(), 0.3}
	outDates, outValues := TrimSeries(dates, values)
	assert.Equal(t, []string{"2024-01-01", "2024-01-03"}, outDates)
	assert.Equal(t, []float64{0.1, 0.3}, outValues)
}
