package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
)

func chartJSON(timestamps []int64, closes []string) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	cl := ""
	for i, c := range closes {
		if i > 0 {
			cl += ","
		}
		cl += c
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, ts, cl)
}

func testClient(srv *httptest.Server) *Client {
	return NewClient(
		WithBaseURL(srv.URL),
		WithRetry(2, time.Millisecond),
	)
}

func TestFetchDailyHistory(t *testing.T) {
	// three trading days plus a null holiday bar in the middle
	day1 := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)
	day4 := day1.AddDate(0, 0, 3)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "6mo", r.URL.Query().Get("range"))
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		fmt.Fprint(w, chartJSON(
			[]int64{day1.Unix(), day2.Unix(), day3.Unix(), day4.Unix()},
			[]string{"185.5", "187.2", "null", "188.0"},
		))
	}))
	defer srv.Close()

	series, err := testClient(srv).FetchDailyHistory(context.Background(), "AAPL", "6mo")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", series.Ticker)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{185.5, 187.2, 188.0}, series.Closes())

	// intraday timestamps collapse to UTC midnight
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), series.Points[0].Date)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), series.Points[2].Date)
}

func TestFetchDailyHistoryNotFoundNoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchDailyHistory(context.Background(), "NOPE", "1y")

	var nf *models.TickerNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"NOPE"}, nf.Symbols)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchDailyHistoryRetriesTransientFailure(t *testing.T) {
	var hits atomic.Int32
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, chartJSON(
			[]int64{day.Unix(), day.AddDate(0, 0, 1).Unix()},
			[]string{"100", "101"},
		))
	}))
	defer srv.Close()

	series, err := testClient(srv).FetchDailyHistory(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchDailyHistoryExhaustedRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchDailyHistory(context.Background(), "AAPL", "1y")

	var pe *models.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "AAPL", pe.Symbol)
	assert.Equal(t, int32(3), hits.Load()) // initial attempt plus two retries
}

func TestFetchDailyHistoryEmptySeriesIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
		fmt.Fprint(w, chartJSON([]int64{day.Unix()}, []string{"null"}))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchDailyHistory(context.Background(), "GHOST", "1mo")

	var nf *models.TickerNotFoundError
	require.ErrorAs(t, err, &nf)
}
