package main

import (
	"context"
	"flag"
	"log"
	"time"

	"RiskPulse/internal/di"
	domrepo "RiskPulse/internal/domain/repository"
	"RiskPulse/pkg/config"
	"RiskPulse/pkg/util"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	period := flag.String("period", "2y", "history window for the training set")
	symbols := flag.String("symbols", "", "comma-separated symbol override (default: configured tickers)")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	list := util.SplitSymbols(*symbols)
	if len(list) == 0 {
		for _, t := range cfg.MarketData.Tickers {
			list = append(list, t.Symbol)
		}
	}
	if len(list) == 0 {
		log.Fatal("no symbols to train on")
	}

	trainer, cleanup, err := di.InitializeTrainer(cfg)
	if err != nil {
		log.Fatalf("trainer initialization failed: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := trainer.Run(ctx, list, domrepo.NormalizePeriod(*period))
	if err != nil {
		log.Fatalf("training run failed: %v", err)
	}

	log.Printf("trained model %s on %d samples, accuracy %.4f",
		result.ModelID, result.Samples, result.Accuracy)
}
