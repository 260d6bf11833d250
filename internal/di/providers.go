package di

import (
	"context"
	"fmt"
	"time"

	"RiskPulse/internal/domain/models"
	"RiskPulse/internal/domain/repository"
	domsvc "RiskPulse/internal/domain/service"
	"RiskPulse/internal/handler/api"
	internalrepo "RiskPulse/internal/repository"
	icache "RiskPulse/internal/service/cache"
	"RiskPulse/internal/service/yahoo"
	"RiskPulse/internal/services/analytics"
	"RiskPulse/internal/services/quant"
	"RiskPulse/internal/usecase"
	pkgcache "RiskPulse/pkg/cache"
	pkgch "RiskPulse/pkg/clickhouse"
	"RiskPulse/pkg/config"
	xhttp "RiskPulse/pkg/http"
	pkgkafka "RiskPulse/pkg/kafka"
	applogger "RiskPulse/pkg/logger"
	"RiskPulse/pkg/metrics"
	"RiskPulse/pkg/server"
)

// ProvideLogger creates the structured logger. Production gets JSON,
// everything else a console writer.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "console"
	level := "debug"
	if cfg.Environment == "production" {
		format = "json"
		level = "info"
	}
	return applogger.New(&applogger.Config{
		Level:      level,
		Format:     format,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
}

// ProvideMetricsRecorder creates the Prometheus recorder.
func ProvideMetricsRecorder() repository.Metrics {
	return metrics.New()
}

// ProvidePriceProvider creates the Yahoo market data client.
func ProvidePriceProvider(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.PriceProvider {
	opts := []yahoo.ClientOption{
		yahoo.WithLogger(l),
		yahoo.WithMetrics(m),
		yahoo.WithRetry(cfg.MarketData.RetryCount, cfg.MarketData.RetryBackoff),
	}
	if cfg.MarketData.BaseURL != "" {
		opts = append(opts, yahoo.WithBaseURL(cfg.MarketData.BaseURL))
	}
	if cfg.MarketData.Timeout > 0 {
		opts = append(opts, yahoo.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.MarketData.Timeout))))
	}
	return yahoo.NewClient(opts...)
}

// ProvideCache creates the history cache: Redis-backed layered cache
// when enabled, in-process memory cache otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}

	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Cache.Addr),
		pkgcache.WithRedisPassword(cfg.Cache.Password),
		pkgcache.WithRedisDB(cfg.Cache.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(redisCache), nil
}

// ProvideClickHouseClient creates a ClickHouse client with the
// training schema applied. Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.SchemaStatements); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideTrainingStore creates the ClickHouse training store. Nil
// when ClickHouse is disabled; feature persistence then degrades to a
// no-op in the analyzers.
func ProvideTrainingStore(chClient *pkgch.Client, l *applogger.Logger) repository.TrainingStore {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewCHTrainingStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAnalysisPublisher creates the Kafka analysis event publisher
// and hooks the log collector onto the same producer. Nil publisher
// when Kafka is disabled.
func ProvideAnalysisPublisher(producer *pkgkafka.Producer, cfg *config.Config, l *applogger.Logger) repository.Publisher {
	if producer == nil {
		return nil
	}

	pub := internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
	if lp, ok := pub.(applogger.Publisher); ok {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.Topic + ".logs",
			Publisher:      lp,
		})
	}
	return pub
}

// ProvideMetricsParams maps the analytics config onto the Sharpe
// conventions, falling back to the standard defaults.
func ProvideMetricsParams(cfg *config.Config) quant.MetricsParams {
	p := quant.DefaultMetricsParams()
	if cfg.Analytics.RiskFreeRate > 0 {
		p.AnnualRiskFree = cfg.Analytics.RiskFreeRate
	}
	if cfg.Analytics.TradingDays > 0 {
		p.TradingDays = float64(cfg.Analytics.TradingDays)
	}
	return p
}

// ProvideHistoryFetcher creates the concurrent history fetcher.
func ProvideHistoryFetcher(provider repository.PriceProvider, cacheSvc pkgcache.Service, cfg *config.Config, l *applogger.Logger) *usecase.HistoryFetcher {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return usecase.NewHistoryFetcher(provider, cacheSvc, ttl, l)
}

// ProvideDirectionClassifier creates the model-service client.
func ProvideDirectionClassifier(cfg *config.Config) domsvc.DirectionClassifier {
	return analytics.NewHTTPDirectionClassifier(cfg)
}

// ProvideModelTrainer creates the model-service training client.
func ProvideModelTrainer(cfg *config.Config) domsvc.ModelTrainer {
	return analytics.NewHTTPModelTrainer(cfg)
}

// ProvidePortfolioAnalyzer creates the portfolio use case.
func ProvidePortfolioAnalyzer(fetcher *usecase.HistoryFetcher, pub repository.Publisher, params quant.MetricsParams, l *applogger.Logger) *usecase.PortfolioAnalyzer {
	return usecase.NewPortfolioAnalyzer(fetcher, pub, params, l)
}

// ProvideStockAnalyzer creates the per-stock use case.
func ProvideStockAnalyzer(
	fetcher *usecase.HistoryFetcher,
	classifier domsvc.DirectionClassifier,
	store repository.TrainingStore,
	pub repository.Publisher,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.StockAnalyzer {
	return usecase.NewStockAnalyzer(fetcher, classifier, store, pub, cfg.MarketData.BenchmarkSymbol, l)
}

// ProvideTrainer creates the offline training use case.
func ProvideTrainer(fetcher *usecase.HistoryFetcher, trainer domsvc.ModelTrainer, store repository.TrainingStore, l *applogger.Logger) *usecase.Trainer {
	return usecase.NewTrainer(fetcher, trainer, store, l)
}

// ProvideHandler creates the API handler with the ticker catalog,
// response cache and health probes attached.
func ProvideHandler(
	portfolios *usecase.PortfolioAnalyzer,
	stocks *usecase.StockAnalyzer,
	store repository.TrainingStore,
	cfg *config.Config,
	l *applogger.Logger,
) xhttp.Handler {
	catalog := make([]models.TickerInfo, 0, len(cfg.MarketData.Tickers))
	for _, t := range cfg.MarketData.Tickers {
		catalog = append(catalog, models.TickerInfo{Symbol: t.Symbol, Name: t.Name})
	}

	h := api.NewAnalyticsHandler(portfolios, stocks, catalog, l)
	if cfg.Cache.Enabled {
		h.SetCache(icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		}))
	} else {
		h.SetCache(icache.NewTTLCache())
	}
	h.SetStore(store)
	return h
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	store repository.TrainingStore,
	pub repository.Publisher,
	cacheSvc pkgcache.Service,
) *server.App {
	return server.New(cfg, l, handler, store, pub, cacheSvc)
}
