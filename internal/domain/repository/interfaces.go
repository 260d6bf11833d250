package repository

import (
	"context"

	"RiskPulse/internal/domain/models"
)

// PriceProvider fetches daily close-price history for a ticker over a
// lookback period. Implementations must return a TickerNotFoundError
// when the symbol has no data, and a ProviderError for transport or
// upstream failures.
type PriceProvider interface {
	FetchDailyHistory(ctx context.Context, symbol string, period Period) (models.PriceSeries, error)
}

// TrainingStore persists engineered feature rows for offline training.
type TrainingStore interface {
	StoreSamples(ctx context.Context, samples []models.TrainingSample) error
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits analysis events for downstream consumers.
type Publisher interface {
	PublishAnalysis(ctx context.Context, ev *models.AnalysisEvent) error
	Close() error
}

// Metrics records operational counters and latencies.
type Metrics interface {
	RecordFetch(source, symbol string)
	RecordError(kind string)
	RecordLastClose(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
