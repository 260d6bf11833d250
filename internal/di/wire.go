//go:build wireinject
// +build wireinject

package di

import (
	"RiskPulse/internal/usecase"
	"RiskPulse/pkg/config"
	"RiskPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetricsRecorder,

		// Infrastructure clients
		ProvidePriceProvider,
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideTrainingStore,
		ProvideAnalysisPublisher,

		// Use cases
		ProvideMetricsParams,
		ProvideHistoryFetcher,
		ProvideDirectionClassifier,
		ProvidePortfolioAnalyzer,
		ProvideStockAnalyzer,

		// Transport
		ProvideHandler,
		ProvideApp,
	)
	return nil, nil
}

// InitializeTrainer wires the offline training pipeline. The cleanup
// function releases the infrastructure clients.
func InitializeTrainer(cfg *config.Config) (*usecase.Trainer, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetricsRecorder,
		ProvidePriceProvider,
		ProvideCache,
		ProvideClickHouseClient,
		ProvideTrainingStore,
		ProvideHistoryFetcher,
		ProvideModelTrainer,
		ProvideTrainer,
	)
	return nil, nil, nil
}
