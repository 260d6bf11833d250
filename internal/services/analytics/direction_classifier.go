package analytics

import (
	"context"
	"fmt"

	"RiskPulse/internal/domain/models"
	domsvc "RiskPulse/internal/domain/service"
	"RiskPulse/pkg/config"
)

// HTTPDirectionClassifier calls the external model service for
// next-day direction predictions. An incomplete feature vector is
// answered locally with an insufficient-data prediction; the model
// service never sees partial inputs.
type HTTPDirectionClassifier struct{ base *HTTPServiceBase }

func NewHTTPDirectionClassifier(cfg *config.Config) *HTTPDirectionClassifier {
	return &HTTPDirectionClassifier{base: NewHTTPServiceBase(cfg)}
}

type predictRequest struct {
	Symbol string  `json:"symbol"`
	SMA10  float64 `json:"sma_10"`
	SMA50  float64 `json:"sma_50"`
	RSI    float64 `json:"rsi"`
}

type predictResponse struct {
	Direction   string  `json:"direction"`
	Probability float64 `json:"probability"`
}

func (c *HTTPDirectionClassifier) PredictDirection(ctx context.Context, symbol string, features domsvc.FeatureVector) (models.Prediction, error) {
	if !features.Complete() {
		return models.Prediction{Status: models.PredictionInsufficientData}, nil
	}

	var pr predictResponse
	req := predictRequest{
		Symbol: symbol,
		SMA10:  *features.SMA10,
		SMA50:  *features.SMA50,
		RSI:    *features.RSI,
	}
	if err := c.base.PostJSONWithRetry(ctx, "/predict", req, &pr, 3); err != nil {
		return models.Prediction{}, fmt.Errorf("post predict: %w", err)
	}

	prob := pr.Probability
	return models.Prediction{
		Status:      models.PredictionOK,
		Direction:   pr.Direction,
		Probability: &prob,
	}, nil
}

var _ domsvc.DirectionClassifier = (*HTTPDirectionClassifier)(nil)
