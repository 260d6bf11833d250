package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	icache "RiskPulse/internal/service/cache"
	"RiskPulse/internal/service/metrics"
	"RiskPulse/internal/service/ratelimit"
	"RiskPulse/internal/usecase"
	xhttp "RiskPulse/pkg/http"
	applogger "RiskPulse/pkg/logger"
)

// AnalyticsHandler exposes the portfolio and per-stock analytics API.
type AnalyticsHandler struct {
	portfolios *usecase.PortfolioAnalyzer
	stocks     *usecase.StockAnalyzer
	catalog    []models.TickerInfo
	store      domrepo.TrainingStore
	cache      icache.BytesCache
	cacheTTL   time.Duration
	rl         *ratelimit.Limiter
	logger     *applogger.Logger
}

func NewAnalyticsHandler(portfolios *usecase.PortfolioAnalyzer, stocks *usecase.StockAnalyzer, catalog []models.TickerInfo, l *applogger.Logger) *AnalyticsHandler {
	metrics.Register()
	return &AnalyticsHandler{
		portfolios: portfolios,
		stocks:     stocks,
		catalog:    catalog,
		cacheTTL:   5 * time.Minute,
		rl:         ratelimit.New(),
		logger:     l,
	}
}

// SetCache enables response caching for the per-stock GET endpoints.
func (h *AnalyticsHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetStore wires the training store so /healthz can probe it.
func (h *AnalyticsHandler) SetStore(s domrepo.TrainingStore) { h.store = s }

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/portfolio/analyze", h.AnalyzePortfolio)
	g.POST("/portfolio/var", h.PortfolioVaR)
	g.GET("/stocks/:symbol/analyze", h.AnalyzeStock)
	g.GET("/stocks/:symbol/indicators", h.StockIndicators)
	g.GET("/tickers", h.Tickers)
}

func (h *AnalyticsHandler) AnalyzePortfolio(c echo.Context) error {
	endpoint := "portfolio_analyze"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if rl := h.checkRate(c, endpoint); rl != nil {
		return rl
	}

	req := &models.PortfolioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.portfolios.Analyze(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) PortfolioVaR(c echo.Context) error {
	endpoint := "portfolio_var"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if rl := h.checkRate(c, endpoint); rl != nil {
		return rl
	}

	req := &models.PortfolioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.portfolios.VaR(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) AnalyzeStock(c echo.Context) error {
	return h.stockEndpoint(c, "stock_analyze", func(ctx context.Context, symbol string, period domrepo.Period) (interface{}, error) {
		return h.stocks.Analyze(ctx, symbol, period)
	})
}

func (h *AnalyticsHandler) StockIndicators(c echo.Context) error {
	return h.stockEndpoint(c, "stock_indicators", func(ctx context.Context, symbol string, period domrepo.Period) (interface{}, error) {
		return h.stocks.Indicators(ctx, symbol, period)
	})
}

// stockEndpoint is the shared request path of the per-stock GETs:
// validate, rate-limit, serve from the response cache when possible,
// compute and backfill the cache otherwise.
func (h *AnalyticsHandler) stockEndpoint(c echo.Context, endpoint string, compute func(context.Context, string, domrepo.Period) (interface{}, error)) error {
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if rl := h.checkRate(c, endpoint); rl != nil {
		return rl
	}

	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := strings.ToUpper(req.Symbol)
	period := domrepo.NormalizePeriod(req.Period)

	cacheKey := endpoint + ":" + symbol + ":" + string(period)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.warn("response cache get failed", applogger.Error(err))
		} else if ok {
			metrics.CacheHits.WithLabelValues(endpoint).Inc()
			return xhttp.SuccessResponse(c, json.RawMessage(b))
		}
	}

	res, err := compute(c.Request().Context(), symbol, period)
	if err != nil {
		return h.fail(c, endpoint, err)
	}

	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := h.cache.SetBytes(cacheKey, b, h.cacheTTL); err != nil {
				h.warn("response cache set failed", applogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, res)
}

// Tickers serves the curated symbol catalog.
func (h *AnalyticsHandler) Tickers(c echo.Context) error {
	return xhttp.ListResponse(c, h.catalog, int64(len(h.catalog)))
}

func (h *AnalyticsHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			h.warn("training store unhealthy", applogger.Error(err))
			status["training_store"] = "unavailable"
		} else {
			status["training_store"] = "ok"
		}
	}
	return c.JSON(http.StatusOK, status)
}

func (h *AnalyticsHandler) checkRate(c echo.Context, endpoint string) error {
	if h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2) {
		return nil
	}
	h.warn("rate limited",
		applogger.String("endpoint", endpoint),
		applogger.String("remote", c.RealIP()),
	)
	return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limited"})
}

func (h *AnalyticsHandler) fail(c echo.Context, endpoint string, err error) error {
	metrics.AnalysisErrors.WithLabelValues(endpoint).Inc()
	if h.logger != nil {
		h.logger.Error("analysis failed",
			applogger.String("endpoint", endpoint),
			applogger.Error(err),
		)
	}
	return xhttp.AppErrorResponse(c, toAppError(err))
}

// toAppError maps domain errors onto transport errors. Unknown
// symbols are a 404 carrying the full offending list; degenerate
// inputs (too little overlapping history, bad weights) are a 422; an
// upstream data source failure is a 502.
func toAppError(err error) error {
	var nf *models.TickerNotFoundError
	if errors.As(err, &nf) {
		return xhttp.NotFoundError("no data found for one or more tickers").
			WithParam("invalid_tickers", nf.Symbols).
			WithError(err)
	}

	switch {
	case errors.Is(err, models.ErrInsufficientData):
		return xhttp.UnprocessableError("not enough price history to compute metrics").WithError(err)
	case errors.Is(err, models.ErrEmptyAlignment):
		return xhttp.UnprocessableError("tickers share no overlapping trading days").WithError(err)
	case errors.Is(err, models.ErrWeightMismatch):
		return xhttp.UnprocessableError("weights do not match portfolio tickers").WithError(err)
	}

	var pe *models.ProviderError
	if errors.As(err, &pe) {
		return xhttp.BadGatewayError("market data source unavailable").
			WithParam("symbol", pe.Symbol).
			WithError(err)
	}
	return xhttp.InternalError("analysis failed").WithError(err)
}

func (h *AnalyticsHandler) warn(msg string, fields ...applogger.Field) {
	if h.logger != nil {
		h.logger.Warn(msg, fields...)
	}
}
