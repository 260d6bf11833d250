package service

import (
	"context"

	"RiskPulse/internal/domain/models"
)

// FeatureVector is the classifier input for one stock/date. Components
// are pointers: nil marks a feature the rolling window could not
// produce yet.
type FeatureVector struct {
	SMA10 *float64
	SMA50 *float64
	RSI   *float64
}

// Complete reports whether every component is defined.
func (v FeatureVector) Complete() bool {
	return v.SMA10 != nil && v.SMA50 != nil && v.RSI != nil
}

// DirectionClassifier predicts next-day price direction from a feature
// vector. Implementations must short-circuit incomplete vectors to an
// insufficient-data prediction without invoking the trained model.
type DirectionClassifier interface {
	PredictDirection(ctx context.Context, symbol string, features FeatureVector) (models.Prediction, error)
}

// TrainingResult reports the outcome of an offline training run.
type TrainingResult struct {
	Samples  int
	Accuracy float64
	ModelID  string
}

// ModelTrainer submits a training dataset to the model service.
type ModelTrainer interface {
	Train(ctx context.Context, samples []models.TrainingSample) (TrainingResult, error)
}
