package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	pkgch "RiskPulse/pkg/clickhouse"
	applogger "RiskPulse/pkg/logger"
)

// SchemaStatements creates the training feature table (idempotent).
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS training_samples (
        ticker  LowCardinality(String),
        date    Date,
        sma_10  Float64,
        sma_50  Float64,
        rsi     Float64,
        label   UInt8
    ) ENGINE = ReplacingMergeTree
    ORDER BY (ticker, date)`,
}

// CHTrainingStore implements TrainingStore backed by ClickHouse.
type CHTrainingStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHTrainingStore(ch *pkgch.Client) *CHTrainingStore {
	return &CHTrainingStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHTrainingStore) SetLogger(l *applogger.Logger) { s.l = l }

// StoreSamples inserts feature rows using multi-row VALUES batches.
func (s *CHTrainingStore) StoreSamples(ctx context.Context, samples []models.TrainingSample) error {
	if len(samples) == 0 {
		return nil
	}

	start := time.Now()
	const chunkSize = 2000
	for lo := 0; lo < len(samples); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(samples) {
			hi = len(samples)
		}

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*6)
		for _, sm := range samples[lo:hi] {
			if sm.Ticker == "" || sm.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args,
				sm.Ticker,
				sm.Date,
				sm.SMA10,
				sm.SMA50,
				sm.RSI,
				uint8(sm.Label),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(
			"INSERT INTO training_samples (ticker, date, sma_10, sma_50, rsi, label) VALUES %s",
			strings.Join(values, ","),
		)
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_samples error",
					applogger.Int("rows", len(values)),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store samples: %w", err)
		}
	}

	if s.l != nil {
		s.l.Info("clickhouse store_samples ok",
			applogger.Int("rows", len(samples)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHTrainingStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHTrainingStore) Close() error {
	return nil // Managed by pkg
}

var _ domrepo.TrainingStore = (*CHTrainingStore)(nil)
