package analytics

import (
	"context"
	"fmt"

	"RiskPulse/internal/domain/models"
	domsvc "RiskPulse/internal/domain/service"
	"RiskPulse/pkg/config"
	"RiskPulse/pkg/util"
)

// HTTPModelTrainer submits engineered datasets to the model service's
// training endpoint.
type HTTPModelTrainer struct{ base *HTTPServiceBase }

func NewHTTPModelTrainer(cfg *config.Config) *HTTPModelTrainer {
	return &HTTPModelTrainer{base: NewHTTPServiceBase(cfg)}
}

type trainSample struct {
	Ticker string  `json:"ticker"`
	Date   string  `json:"date"`
	SMA10  float64 `json:"sma_10"`
	SMA50  float64 `json:"sma_50"`
	RSI    float64 `json:"rsi"`
	Label  int     `json:"label"`
}

type trainRequest struct {
	Samples []trainSample `json:"samples"`
}

type trainResponse struct {
	Samples  int     `json:"samples"`
	Accuracy float64 `json:"accuracy"`
	ModelID  string  `json:"model_id"`
}

func (t *HTTPModelTrainer) Train(ctx context.Context, samples []models.TrainingSample) (domsvc.TrainingResult, error) {
	if len(samples) == 0 {
		return domsvc.TrainingResult{}, fmt.Errorf("no training samples")
	}

	req := trainRequest{Samples: make([]trainSample, 0, len(samples))}
	for _, s := range samples {
		req.Samples = append(req.Samples, trainSample{
			Ticker: s.Ticker,
			Date:   util.FormatDate(s.Date),
			SMA10:  s.SMA10,
			SMA50:  s.SMA50,
			RSI:    s.RSI,
			Label:  s.Label,
		})
	}

	var tr trainResponse
	if err := t.base.PostJSON(ctx, "/train", req, &tr); err != nil {
		return domsvc.TrainingResult{}, fmt.Errorf("post train: %w", err)
	}

	return domsvc.TrainingResult{
		Samples:  tr.Samples,
		Accuracy: tr.Accuracy,
		ModelID:  tr.ModelID,
	}, nil
}

var _ domsvc.ModelTrainer = (*HTTPModelTrainer)(nil)
