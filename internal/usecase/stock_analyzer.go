package usecase

import (
	"context"
	"sync"
	"time"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	domsvc "RiskPulse/internal/domain/service"
	"RiskPulse/internal/services/quant"
	applogger "RiskPulse/pkg/logger"
	"RiskPulse/pkg/util"
)

// StockAnalyzer computes per-stock summary statistics, technical
// indicators and the next-day direction prediction.
type StockAnalyzer struct {
	fetcher    *HistoryFetcher
	classifier domsvc.DirectionClassifier
	store      domrepo.TrainingStore
	publisher  domrepo.Publisher
	benchmark  string
	logger     *applogger.Logger
}

func NewStockAnalyzer(
	fetcher *HistoryFetcher,
	classifier domsvc.DirectionClassifier,
	store domrepo.TrainingStore,
	publisher domrepo.Publisher,
	benchmark string,
	l *applogger.Logger,
) *StockAnalyzer {
	return &StockAnalyzer{
		fetcher:    fetcher,
		classifier: classifier,
		store:      store,
		publisher:  publisher,
		benchmark:  benchmark,
		logger:     l,
	}
}

// Analyze returns the stock summary: average daily return, volatility,
// price history and the model's next-day direction call.
func (a *StockAnalyzer) Analyze(ctx context.Context, symbol string, period domrepo.Period) (*models.StockAnalysis, error) {
	hist, err := a.fetcher.FetchOne(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	returns, err := quant.DailyReturns(hist)
	if err != nil {
		return nil, err
	}
	values := returns.Values()

	prediction := models.Prediction{Status: models.PredictionInsufficientData}
	if a.classifier != nil {
		features := quant.LatestFeatures(hist)
		pred, perr := a.classifier.PredictDirection(ctx, symbol, features)
		if perr != nil {
			if a.logger != nil {
				a.logger.Warn("direction prediction failed",
					applogger.String("symbol", symbol),
					applogger.Error(perr),
				)
			}
		} else {
			prediction = pred
		}
	}

	a.appendTrainingRows(ctx, hist)

	result := &models.StockAnalysis{
		Symbol:           symbol,
		AverageReturn:    quant.Sanitize(quant.Mean(values)),
		Volatility:       quant.Sanitize(quant.StdDev(values)),
		Prediction:       prediction,
		HistoricalPrices: hist.Closes(),
		Dates:            util.FormatDates(hist.Dates()),
	}

	if a.publisher != nil {
		ev := &models.AnalysisEvent{
			Kind:       "stock_analyze",
			Symbols:    []string{symbol},
			At:         time.Now().UTC(),
			MeanReturn: result.AverageReturn,
			Volatility: result.Volatility,
		}
		if err := a.publisher.PublishAnalysis(ctx, ev); err != nil && a.logger != nil {
			a.logger.Warn("analysis event publish failed",
				applogger.String("kind", ev.Kind),
				applogger.Error(err),
			)
		}
	}
	return result, nil
}

// Indicators computes the full indicator suite for one stock. Beta is
// computed against the configured benchmark; a benchmark outage
// degrades beta to null rather than failing the request.
func (a *StockAnalyzer) Indicators(ctx context.Context, symbol string, period domrepo.Period) (*models.IndicatorSeries, error) {
	var (
		wg       sync.WaitGroup
		hist     models.PriceSeries
		histErr  error
		bench    models.PriceSeries
		benchErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		hist, histErr = a.fetcher.FetchOne(ctx, symbol, period)
	}()
	if a.benchmark != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bench, benchErr = a.fetcher.FetchOne(ctx, a.benchmark, period)
		}()
	}
	wg.Wait()

	if histErr != nil {
		return nil, histErr
	}
	closes := hist.Closes()
	if len(closes) < 2 {
		return nil, &models.ProviderError{Symbol: symbol, Err: models.ErrInsufficientData}
	}

	bbUpper, bbLower := quant.Bollinger(closes)
	macd, signal := quant.MACD(closes)

	out := &models.IndicatorSeries{
		Symbol:  symbol,
		Dates:   util.FormatDates(hist.Dates()),
		SMA10:   quant.SanitizeSeries(quant.SMA(closes, 10)),
		SMA50:   quant.SanitizeSeries(quant.SMA(closes, 50)),
		RSI:     quant.SanitizeSeries(quant.RSI(closes, 14)),
		BBUpper: quant.SanitizeSeries(bbUpper),
		BBLower: quant.SanitizeSeries(bbLower),
		MACD:    quant.SanitizeSeries(macd),
		Signal:  quant.SanitizeSeries(signal),
	}

	if a.benchmark != "" {
		if benchErr != nil {
			if a.logger != nil {
				a.logger.Warn("benchmark fetch failed, beta omitted",
					applogger.String("benchmark", a.benchmark),
					applogger.Error(benchErr),
				)
			}
		} else {
			stockRet, err1 := quant.DailyReturns(hist)
			benchRet, err2 := quant.DailyReturns(bench)
			if err1 == nil && err2 == nil {
				out.Beta = quant.Sanitize(quant.Beta(stockRet, benchRet))
			}
		}
	}
	return out, nil
}

// appendTrainingRows ships this history's engineered feature rows to
// the training store. Best-effort: storage problems never fail the
// request.
func (a *StockAnalyzer) appendTrainingRows(ctx context.Context, hist models.PriceSeries) {
	if a.store == nil {
		return
	}
	samples := quant.BuildSamples(hist)
	if len(samples) == 0 {
		return
	}
	if err := a.store.StoreSamples(ctx, samples); err != nil && a.logger != nil {
		a.logger.Warn("training rows append failed",
			applogger.String("symbol", hist.Ticker),
			applogger.Int("rows", len(samples)),
			applogger.Error(err),
		)
	}
}
