package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	"RiskPulse/internal/services/quant"
)

// stubProvider serves canned histories and records which symbols were
// requested. Unknown symbols get a TickerNotFoundError, like the live
// chart API.
type stubProvider struct {
	histories map[string]models.PriceSeries
	calls     []string
}

func (s *stubProvider) FetchDailyHistory(_ context.Context, symbol string, _ domrepo.Period) (models.PriceSeries, error) {
	s.calls = append(s.calls, symbol)
	hist, ok := s.histories[symbol]
	if !ok {
		return models.PriceSeries{}, &models.TickerNotFoundError{Symbols: []string{symbol}}
	}
	return hist, nil
}

func seriesFromReturns(ticker string, start time.Time, returns []float64) models.PriceSeries {
	points := []models.PricePoint{{Date: start, Close: 100}}
	price := 100.0
	for i, r := range returns {
		price *= 1 + r
		points = append(points, models.PricePoint{
			Date:  start.AddDate(0, 0, i+1),
			Close: price,
		})
	}
	return models.PriceSeries{Ticker: ticker, Points: points}
}

func twoStockProvider() *stubProvider {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &stubProvider{
		histories: map[string]models.PriceSeries{
			"AAPL": seriesFromReturns("AAPL", start, []float64{0.01, -0.02, 0.03, 0}),
			"MSFT": seriesFromReturns("MSFT", start, []float64{0.02, 0.01, -0.01, 0.02}),
		},
	}
}

func portfolioRequest() *models.PortfolioRequest {
	return &models.PortfolioRequest{
		Portfolio: []models.PortfolioEntry{
			{Ticker: "AAPL", Weight: 0.6},
			{Ticker: "MSFT", Weight: 0.4},
		},
		ConfidenceLevel: 0.95,
		Period:          "1y",
	}
}

func TestPortfolioAnalyzerAnalyze(t *testing.T) {
	provider := twoStockProvider()
	fetcher := NewHistoryFetcher(provider, nil, 0, nil)
	analyzer := NewPortfolioAnalyzer(fetcher, nil, quant.DefaultMetricsParams(), nil)

	result, err := analyzer.Analyze(context.Background(), portfolioRequest())
	require.NoError(t, err)

	require.NotNil(t, result.MeanReturn)
	assert.InDelta(t, 0.007, *result.MeanReturn, 1e-9)

	varA := 0.0013 / 3
	varB := 0.0002
	covAB := -0.0005 / 3
	wantVol := math.Sqrt(0.36*varA + 0.16*varB + 2*0.6*0.4*covAB)
	require.NotNil(t, result.Volatility)
	assert.InDelta(t, wantVol, *result.Volatility, 1e-9)

	require.NotNil(t, result.SharpeRatio)
	wantSharpe := (0.007 - 0.02/252) / wantVol * math.Sqrt(252)
	assert.InDelta(t, wantSharpe, *result.SharpeRatio, 1e-9)

	require.NotNil(t, result.MaxDrawdown)
	assert.InDelta(t, -0.02, *result.MaxDrawdown, 1e-9)

	require.Len(t, result.DailyReturns, 4)
	assert.InDelta(t, 0.6*0.01+0.4*0.02, result.DailyReturns[0], 1e-9)
	require.Len(t, result.Dates, 4)
	assert.Equal(t, "2024-01-02", result.Dates[0])
	assert.Equal(t, "2024-01-05", result.Dates[3])
}

func TestPortfolioAnalyzerVaR(t *testing.T) {
	provider := twoStockProvider()
	fetcher := NewHistoryFetcher(provider, nil, 0, nil)
	analyzer := NewPortfolioAnalyzer(fetcher, nil, quant.DefaultMetricsParams(), nil)

	req := portfolioRequest()
	req.ConfidenceLevel = 0.5

	result, err := analyzer.VaR(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.ConfidenceLevel)

	// sorted combined returns: -0.008, 0.008, 0.014, 0.014;
	// floor(0.5*4) = 2 picks the third, ES averages the two below it.
	require.NotNil(t, result.ValueAtRisk)
	assert.InDelta(t, 0.014, *result.ValueAtRisk, 1e-9)
	require.NotNil(t, result.ExpectedShortfall)
	assert.InDelta(t, 0.0, *result.ExpectedShortfall, 1e-9)
}

func TestPortfolioAnalyzerCollectsAllUnknownTickers(t *testing.T) {
	provider := twoStockProvider()
	fetcher := NewHistoryFetcher(provider, nil, 0, nil)
	analyzer := NewPortfolioAnalyzer(fetcher, nil, quant.DefaultMetricsParams(), nil)

	req := &models.PortfolioRequest{
		Portfolio: []models.PortfolioEntry{
			{Ticker: "AAPL", Weight: 0.4},
			{Ticker: "XXXX", Weight: 0.3},
			{Ticker: "YYYY", Weight: 0.3},
		},
		ConfidenceLevel: 0.95,
		Period:          "1y",
	}

	_, err := analyzer.Analyze(context.Background(), req)
	var nf *models.TickerNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"XXXX", "YYYY"}, nf.Symbols)
}

func TestHistoryFetcherDedupes(t *testing.T) {
	provider := twoStockProvider()
	fetcher := NewHistoryFetcher(provider, nil, 0, nil)

	out, err := fetcher.FetchAll(context.Background(), []string{"AAPL", "AAPL", "MSFT"}, "1y")
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Len(t, provider.calls, 2)
}
