package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	icache "RiskPulse/internal/service/cache"
	"RiskPulse/internal/services/quant"
	"RiskPulse/internal/usecase"
)

type fakeProvider struct {
	histories map[string]models.PriceSeries
	calls     int
}

func (f *fakeProvider) FetchDailyHistory(_ context.Context, symbol string, _ domrepo.Period) (models.PriceSeries, error) {
	f.calls++
	hist, ok := f.histories[symbol]
	if !ok {
		return models.PriceSeries{}, &models.TickerNotFoundError{Symbols: []string{symbol}}
	}
	return hist, nil
}

func priceSeries(ticker string, closes ...float64) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := models.PriceSeries{Ticker: ticker}
	for i, c := range closes {
		s.Points = append(s.Points, models.PricePoint{Date: start.AddDate(0, 0, i), Close: c})
	}
	return s
}

func newTestHandler() (*AnalyticsHandler, *fakeProvider, *echo.Echo) {
	provider := &fakeProvider{
		histories: map[string]models.PriceSeries{
			"AAPL": priceSeries("AAPL", 100, 101, 98.98, 101.9494, 101.9494),
			"MSFT": priceSeries("MSFT", 100, 102, 103.02, 101.9898, 104.0296),
		},
	}
	fetcher := usecase.NewHistoryFetcher(provider, nil, 0, nil)
	portfolios := usecase.NewPortfolioAnalyzer(fetcher, nil, quant.DefaultMetricsParams(), nil)
	stocks := usecase.NewStockAnalyzer(fetcher, nil, nil, nil, "", nil)

	catalog := []models.TickerInfo{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
	}
	h := NewAnalyticsHandler(portfolios, stocks, catalog, nil)

	e := echo.New()
	h.RegisterRoutes(e)
	return h, provider, e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAnalyzePortfolioEndpoint(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodPost, "/api/portfolio/analyze",
		`{"portfolio":[{"ticker":"AAPL","weight":0.6},{"ticker":"MSFT","weight":0.4}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var res models.PortfolioAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotNil(t, res.MeanReturn)
	assert.InDelta(t, 0.007, *res.MeanReturn, 1e-6)
	require.NotNil(t, res.MaxDrawdown)
	assert.InDelta(t, -0.02, *res.MaxDrawdown, 1e-6)
	assert.Len(t, res.DailyReturns, 4)
}

func TestPortfolioVaREndpoint(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodPost, "/api/portfolio/var",
		`{"portfolio":[{"ticker":"AAPL","weight":0.5},{"ticker":"MSFT","weight":0.5}],"confidence_level":0.9}`)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var res models.RiskReport
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 0.9, res.ConfidenceLevel)
	require.NotNil(t, res.ValueAtRisk)
}

func TestAnalyzePortfolioUnknownTickers(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodPost, "/api/portfolio/analyze",
		`{"portfolio":[{"ticker":"AAPL","weight":0.5},{"ticker":"XXXX","weight":0.5}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusNotFound, env.Status)

	var appErrs []struct {
		Code   string                 `json:"code"`
		Params map[string]interface{} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &appErrs))
	require.Len(t, appErrs, 1)
	assert.Equal(t, "ERR_NOT_FOUND", appErrs[0].Code)
	assert.Equal(t, []interface{}{"XXXX"}, appErrs[0].Params["invalid_tickers"])
}

func TestAnalyzePortfolioValidation(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodPost, "/api/portfolio/analyze", `{"portfolio":[]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestAnalyzeStockEndpoint(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodGet, "/api/stocks/aapl/analyze?period=6mo", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var res models.StockAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "AAPL", res.Symbol)
	require.NotNil(t, res.AverageReturn)
	assert.Len(t, res.HistoricalPrices, 5)
	// no classifier wired: the prediction degrades instead of failing
	assert.Equal(t, models.PredictionInsufficientData, res.Prediction.Status)
}

func TestStockIndicatorsEndpoint(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodGet, "/api/stocks/AAPL/indicators", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var res models.IndicatorSeries
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "AAPL", res.Symbol)
	require.Len(t, res.Dates, 5)
	// 5 closes cannot fill a 10-day window
	for _, v := range res.SMA10 {
		assert.Nil(t, v)
	}
	assert.Nil(t, res.Beta)
}

func TestStockEndpointResponseCache(t *testing.T) {
	h, provider, e := newTestHandler()
	h.SetCache(icache.NewTTLCache())

	rec := doJSON(e, http.MethodGet, "/api/stocks/AAPL/analyze", "")
	require.Equal(t, http.StatusOK, rec.Code)
	callsAfterFirst := provider.calls

	rec = doJSON(e, http.MethodGet, "/api/stocks/AAPL/analyze", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var res models.StockAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, callsAfterFirst, provider.calls)
}

func TestTickersEndpoint(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodGet, "/api/tickers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var list struct {
		Rows  []models.TickerInfo `json:"rows"`
		Total int64               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Rows, 2)
	assert.Equal(t, "AAPL", list.Rows[0].Symbol)
}

func TestHealthEndpoint(t *testing.T) {
	_, _, e := newTestHandler()

	rec := doJSON(e, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
}
