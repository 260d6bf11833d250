package usecase

import (
	"context"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	domsvc "RiskPulse/internal/domain/service"
	"RiskPulse/internal/services/quant"
	applogger "RiskPulse/pkg/logger"
)

// Trainer drives an offline training run: fetch histories for the
// curated ticker set, engineer feature rows, persist them, and submit
// the dataset to the model service.
type Trainer struct {
	fetcher *HistoryFetcher
	trainer domsvc.ModelTrainer
	store   domrepo.TrainingStore
	logger  *applogger.Logger
}

func NewTrainer(fetcher *HistoryFetcher, trainer domsvc.ModelTrainer, store domrepo.TrainingStore, l *applogger.Logger) *Trainer {
	return &Trainer{
		fetcher: fetcher,
		trainer: trainer,
		store:   store,
		logger:  l,
	}
}

// BuildDataset fetches and engineers the full training dataset.
func (t *Trainer) BuildDataset(ctx context.Context, symbols []string, period domrepo.Period) ([]models.TrainingSample, error) {
	histories, err := t.fetcher.FetchAll(ctx, symbols, period)
	if err != nil {
		return nil, err
	}
	return quant.BuildDataset(histories), nil
}

// Run executes a full training pass and returns the model service's
// training report.
func (t *Trainer) Run(ctx context.Context, symbols []string, period domrepo.Period) (domsvc.TrainingResult, error) {
	samples, err := t.BuildDataset(ctx, symbols, period)
	if err != nil {
		return domsvc.TrainingResult{}, err
	}

	t.logger.Info("training dataset built",
		applogger.Int("tickers", len(symbols)),
		applogger.Int("samples", len(samples)),
	)

	if t.store != nil {
		if err := t.store.StoreSamples(ctx, samples); err != nil {
			t.logger.Warn("training dataset persist failed", applogger.Error(err))
		}
	}

	result, err := t.trainer.Train(ctx, samples)
	if err != nil {
		return domsvc.TrainingResult{}, err
	}

	t.logger.Info("training complete",
		applogger.Int("samples", result.Samples),
		applogger.Float64("accuracy", result.Accuracy),
		applogger.String("model_id", result.ModelID),
	)
	return result, nil
}
