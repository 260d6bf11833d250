package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	"RiskPulse/pkg/cache"
	applogger "RiskPulse/pkg/logger"
)

// HistoryFetcher fans out price-history fetches across a portfolio's
// tickers. The whole batch is resolved before any error surfaces:
// unknown symbols are collected into one TickerNotFoundError so the
// caller can report every invalid ticker at once.
type HistoryFetcher struct {
	provider domrepo.PriceProvider
	cache    cache.Service
	cacheTTL time.Duration
	logger   *applogger.Logger
}

func NewHistoryFetcher(provider domrepo.PriceProvider, cacheSvc cache.Service, ttl time.Duration, l *applogger.Logger) *HistoryFetcher {
	return &HistoryFetcher{
		provider: provider,
		cache:    cacheSvc,
		cacheTTL: ttl,
		logger:   l,
	}
}

type fetchResult struct {
	symbol string
	series models.PriceSeries
	err    error
}

// FetchAll fetches daily histories for all symbols concurrently.
// Duplicates are fetched once. Returns a map keyed by symbol on
// success; if any symbol has no data, the result is a single
// TickerNotFoundError covering every such symbol.
func (f *HistoryFetcher) FetchAll(ctx context.Context, symbols []string, period domrepo.Period) (map[string]models.PriceSeries, error) {
	unique := dedupe(symbols)
	if len(unique) == 0 {
		return nil, &models.TickerNotFoundError{Symbols: nil}
	}

	ch := make(chan fetchResult, len(unique))
	var wg sync.WaitGroup
	for _, sym := range unique {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			series, err := f.fetchOne(ctx, sym, period)
			ch <- fetchResult{symbol: sym, series: series, err: err}
		}(sym)
	}
	wg.Wait()
	close(ch)

	out := make(map[string]models.PriceSeries, len(unique))
	var notFound []string
	var provErr error
	for res := range ch {
		switch {
		case res.err == nil:
			out[res.symbol] = res.series
		default:
			var nf *models.TickerNotFoundError
			if errors.As(res.err, &nf) {
				notFound = append(notFound, nf.Symbols...)
				continue
			}
			if provErr == nil {
				provErr = res.err
			}
		}
	}

	if len(notFound) > 0 {
		sort.Strings(notFound)
		return nil, &models.TickerNotFoundError{Symbols: notFound}
	}
	if provErr != nil {
		return nil, provErr
	}
	return out, nil
}

// FetchOne fetches a single symbol's history through the cache.
func (f *HistoryFetcher) FetchOne(ctx context.Context, symbol string, period domrepo.Period) (models.PriceSeries, error) {
	return f.fetchOne(ctx, symbol, period)
}

func (f *HistoryFetcher) fetchOne(ctx context.Context, symbol string, period domrepo.Period) (models.PriceSeries, error) {
	key := cache.GenerateKeyWithParams("history", symbol, string(period))

	if f.cache != nil {
		var cached models.PriceSeries
		if err := f.cache.Get(ctx, key, &cached); err == nil && cached.Len() > 0 {
			return cached, nil
		}
	}

	series, err := f.provider.FetchDailyHistory(ctx, symbol, period)
	if err != nil {
		return models.PriceSeries{}, err
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, series, f.cacheTTL); err != nil && f.logger != nil {
			f.logger.Warn("history cache set failed",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
	}
	return series, nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
