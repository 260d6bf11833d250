package usecase

import (
	"context"
	"time"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	"RiskPulse/internal/services/quant"
	applogger "RiskPulse/pkg/logger"
)

// PortfolioAnalyzer computes portfolio risk/return metrics and
// historical VaR over date-aligned daily returns.
type PortfolioAnalyzer struct {
	fetcher   *HistoryFetcher
	publisher domrepo.Publisher
	params    quant.MetricsParams
	logger    *applogger.Logger
}

func NewPortfolioAnalyzer(fetcher *HistoryFetcher, publisher domrepo.Publisher, params quant.MetricsParams, l *applogger.Logger) *PortfolioAnalyzer {
	return &PortfolioAnalyzer{
		fetcher:   fetcher,
		publisher: publisher,
		params:    params,
		logger:    l,
	}
}

// Analyze computes mean return, volatility, Sharpe ratio and max
// drawdown for the requested portfolio.
func (a *PortfolioAnalyzer) Analyze(ctx context.Context, req *models.PortfolioRequest) (*models.PortfolioAnalysis, error) {
	table, err := a.alignedTable(ctx, req)
	if err != nil {
		return nil, err
	}

	stats, err := quant.PortfolioMetrics(table, req.Weights(), a.params)
	if err != nil {
		return nil, err
	}

	combined, err := quant.CombinedReturns(table, req.Weights())
	if err != nil {
		return nil, err
	}
	dates, returns := quant.TrimSeries(table.Dates, combined)

	result := &models.PortfolioAnalysis{
		Portfolio:    req.Portfolio,
		MeanReturn:   quant.Sanitize(stats.MeanReturn),
		Volatility:   quant.Sanitize(stats.Volatility),
		SharpeRatio:  quant.Sanitize(stats.SharpeRatio),
		MaxDrawdown:  quant.Sanitize(stats.MaxDrawdown),
		DailyReturns: returns,
		Dates:        dates,
	}

	a.publish(ctx, &models.AnalysisEvent{
		Kind:       "portfolio_analyze",
		Symbols:    req.Tickers(),
		At:         time.Now().UTC(),
		MeanReturn: result.MeanReturn,
		Volatility: result.Volatility,
	})
	return result, nil
}

// VaR computes historical-simulation VaR and Expected Shortfall for
// the requested portfolio at its confidence level.
func (a *PortfolioAnalyzer) VaR(ctx context.Context, req *models.PortfolioRequest) (*models.RiskReport, error) {
	table, err := a.alignedTable(ctx, req)
	if err != nil {
		return nil, err
	}

	combined, err := quant.CombinedReturns(table, req.Weights())
	if err != nil {
		return nil, err
	}

	risk, err := quant.HistoricalVaR(combined, req.ConfidenceLevel)
	if err != nil {
		return nil, err
	}
	dates, returns := quant.TrimSeries(table.Dates, combined)

	result := &models.RiskReport{
		ConfidenceLevel:   req.ConfidenceLevel,
		ValueAtRisk:       quant.Sanitize(risk.ValueAtRisk),
		ExpectedShortfall: quant.Sanitize(risk.ExpectedShortfall),
		DailyReturns:      returns,
		Dates:             dates,
	}

	a.publish(ctx, &models.AnalysisEvent{
		Kind:        "portfolio_var",
		Symbols:     req.Tickers(),
		At:          time.Now().UTC(),
		ValueAtRisk: result.ValueAtRisk,
	})
	return result, nil
}

func (a *PortfolioAnalyzer) alignedTable(ctx context.Context, req *models.PortfolioRequest) (models.AlignedReturns, error) {
	period := domrepo.NormalizePeriod(req.Period)
	histories, err := a.fetcher.FetchAll(ctx, req.Tickers(), period)
	if err != nil {
		return models.AlignedReturns{}, err
	}

	series := make(map[string]models.ReturnSeries, len(histories))
	for sym, hist := range histories {
		rs, err := quant.DailyReturns(hist)
		if err != nil {
			return models.AlignedReturns{}, err
		}
		series[sym] = rs
	}

	return quant.Align(series)
}

// publish is best-effort: a broker outage never fails an analysis.
func (a *PortfolioAnalyzer) publish(ctx context.Context, ev *models.AnalysisEvent) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishAnalysis(ctx, ev); err != nil && a.logger != nil {
		a.logger.Warn("analysis event publish failed",
			applogger.String("kind", ev.Kind),
			applogger.Error(err),
		)
	}
}
