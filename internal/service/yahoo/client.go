package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"RiskPulse/internal/domain/models"
	"RiskPulse/internal/domain/repository"
	xhttp "RiskPulse/pkg/http"
	applogger "RiskPulse/pkg/logger"
	"RiskPulse/pkg/util"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// ClientOption configures Client.
type ClientOption func(*Client)

// Client implements repository.PriceProvider against the Yahoo Finance
// chart API. Transient failures are retried with backoff; a symbol
// with no data is reported as TickerNotFoundError, never retried.
type Client struct {
	baseURL      string
	http         *xhttp.Client
	logger       *applogger.Logger
	metrics      repository.Metrics
	retryCount   int
	retryBackoff time.Duration
}

// NewClient creates a Yahoo market data client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		retryCount:   3,
		retryBackoff: 500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(30 * time.Second))
	}
	return c
}

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *xhttp.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m repository.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithRetry sets retry count and backoff for transient failures.
func WithRetry(count int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.retryCount = count
		c.retryBackoff = backoff
	}
}

// chartResponse is the Yahoo chart API payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyHistory fetches daily close history for symbol over period.
func (c *Client) FetchDailyHistory(ctx context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	start := time.Now()

	series, err := c.fetchWithRetry(ctx, symbol, period)

	if c.metrics != nil {
		c.metrics.RecordLatency("fetch_daily_history", time.Since(start).Seconds())
		if err != nil {
			c.metrics.RecordError("fetch")
		} else {
			c.metrics.RecordFetch("yahoo", symbol)
			if n := series.Len(); n > 0 {
				c.metrics.RecordLastClose(symbol, series.Points[n-1].Close)
			}
		}
	}

	return series, err
}

func (c *Client) fetchWithRetry(ctx context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return models.PriceSeries{}, &models.ProviderError{Symbol: symbol, Err: ctx.Err()}
			case <-time.After(c.retryBackoff * time.Duration(attempt)):
			}
		}

		series, err := c.fetchChart(ctx, symbol, period)
		if err == nil {
			return series, nil
		}

		var nf *models.TickerNotFoundError
		if errors.As(err, &nf) {
			return models.PriceSeries{}, err
		}

		lastErr = err
		if c.logger != nil {
			c.logger.Warn("market data fetch retry",
				applogger.String("symbol", symbol),
				applogger.Int("attempt", attempt+1),
				applogger.Error(err),
			)
		}
	}
	return models.PriceSeries{}, &models.ProviderError{Symbol: symbol, Err: lastErr}
}

func (c *Client) fetchChart(ctx context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {string(period)},
		},
	})
	if err != nil {
		return models.PriceSeries{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return models.PriceSeries{}, &models.TickerNotFoundError{Symbols: []string{symbol}}
	}
	if resp.StatusCode != http.StatusOK {
		return models.PriceSeries{}, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return models.PriceSeries{}, fmt.Errorf("decode chart: %w", err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return models.PriceSeries{}, &models.TickerNotFoundError{Symbols: []string{symbol}}
		}
		return models.PriceSeries{}, fmt.Errorf("chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return models.PriceSeries{}, &models.TickerNotFoundError{Symbols: []string{symbol}}
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return models.PriceSeries{}, &models.TickerNotFoundError{Symbols: []string{symbol}}
	}
	closes := result.Indicators.Quote[0].Close

	series := models.PriceSeries{Ticker: symbol}
	seen := make(map[int64]bool, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bars (holidays etc.)
		}
		day := util.DayKey(time.Unix(ts, 0).UTC())
		if seen[day.Unix()] {
			continue
		}
		seen[day.Unix()] = true
		series.Points = append(series.Points, models.PricePoint{
			Date:  day,
			Close: *closes[i],
		})
	}

	if series.Len() == 0 {
		return models.PriceSeries{}, &models.TickerNotFoundError{Symbols: []string{symbol}}
	}

	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].Date.Before(series.Points[j].Date)
	})
	return series, nil
}
