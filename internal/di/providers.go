package di

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/repository"
	domsvc "GeoPulse/internal/domain/service"
	"GeoPulse/internal/handler/api"
	mid "GeoPulse/internal/middleware"
	internalrepo "GeoPulse/internal/repository"
	icache "GeoPulse/internal/service/cache"
	"GeoPulse/internal/service/marketdata"
	"GeoPulse/internal/services/headlines"
	market "GeoPulse/internal/services/market"
	"GeoPulse/internal/services/signal"
	"GeoPulse/internal/services/simulation"
	"GeoPulse/internal/usecase"
	pkgcache "GeoPulse/pkg/cache"
	"GeoPulse/pkg/config"
	xhttp "GeoPulse/pkg/http"
	pkgkafka "GeoPulse/pkg/kafka"
	applogger "GeoPulse/pkg/logger"
	"GeoPulse/pkg/metrics"
	"GeoPulse/pkg/queue"
	"GeoPulse/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideProfileStore builds the region profile store from configuration.
func ProvideProfileStore(cfg *config.Config) (repository.ProfileStore, error) {
	profiles := make([]models.RegionProfile, 0, len(cfg.Regions))
	for _, r := range cfg.Regions {
		weights := make(map[models.RegimeType]float64, len(r.RegimeWeights))
		for name, w := range r.RegimeWeights {
			weights[models.RegimeType(name)] = w
		}
		profiles = append(profiles, models.RegionProfile{
			ID:                r.ID,
			Name:              r.Name,
			ProxyType:         r.ProxyType,
			PhysBaseline:      r.PhysBaseline,
			PhysVolatility:    r.PhysVolatility,
			WeekendMultiplier: r.WeekendMultiplier,
			Persistence:       r.Persistence,
			VolumeBaseline:    r.VolumeBaseline,
			SentimentBias:     r.SentimentBias,
			HypeTendency:      r.HypeTendency,
			DiversityBaseline: r.DiversityBaseline,
			RegimeWeights:     weights,
			MarketSymbol:      r.Market.Symbol,
			MarketName:        r.Market.Name,
		})
	}
	store, err := internalrepo.NewConfigProfileStore(profiles)
	if err != nil {
		return nil, fmt.Errorf("profile store: %w", err)
	}
	return store, nil
}

// ProvideSimulationTuning merges config overrides onto calibrated defaults.
// A key present in the config wins even when its value is zero.
func ProvideSimulationTuning(cfg *config.Config) simulation.Tuning {
	t := simulation.DefaultTuning()
	if v := cfg.Simulation.SecondRegimeProb; v != nil {
		t.SecondRegimeProb = *v
	}
	if v := cfg.Simulation.NarrativePersistence; v != nil {
		t.NarrativePersistence = *v
	}
	if v := cfg.Simulation.NarrativeNoiseSigma; v != nil {
		t.NarrativeNoiseSigma = *v
	}
	if v := cfg.Simulation.HeadlinesPerDay; v != nil {
		t.HeadlinesPerDay = *v
	}
	return t
}

// ProvideSignalTuning merges config overrides onto calibrated defaults.
// A key present in the config wins even when its value is zero.
func ProvideSignalTuning(cfg *config.Config) signal.Tuning {
	t := signal.DefaultTuning()
	if v := cfg.Signal.TanhScale; v != nil {
		t.TanhScale = *v
	}
	if v := cfg.Signal.HypeAmpFactor; v != nil {
		t.HypeAmpFactor = *v
	}
	if v := cfg.Signal.NeutralBand; v != nil {
		t.NeutralBand = *v
	}
	if v := cfg.Signal.ThresholdLow; v != nil {
		t.ThresholdLow = *v
	}
	if v := cfg.Signal.ThresholdMedium; v != nil {
		t.ThresholdMedium = *v
	}
	if v := cfg.Signal.ThresholdHigh; v != nil {
		t.ThresholdHigh = *v
	}
	return t
}

// ProvideNormalizer creates the score normalizer.
func ProvideNormalizer(tuning signal.Tuning) *signal.Normalizer {
	return signal.NewNormalizer(tuning)
}

// ProvideEngine creates the divergence engine.
func ProvideEngine(tuning signal.Tuning) *signal.Engine {
	return signal.NewEngine(tuning)
}

// ProvideHeadlineGenerator creates the headline generator.
func ProvideHeadlineGenerator() domsvc.HeadlineGenerator {
	return headlines.New()
}

// ProvideKafkaProducer creates a Kafka producer, or nil for the log backend.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
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

// ProvideEventProcessor creates the feed/alert event publisher switch.
func ProvideEventProcessor(
	producer *pkgkafka.Producer,
	cfg *config.Config,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.EventProcessor {
	var kafkaPub repository.Publisher
	if producer != nil {
		kafkaPub = internalrepo.NewKafkaPublisher(producer, cfg.Kafka.FeedTopic, cfg.Kafka.AlertTopic)
	}
	logPub := internalrepo.NewLogPublisher(l)
	return usecase.NewEventProcessor(kafkaPub, logPub, m, cfg.Backend.Type)
}

// ProvideCacheService creates the shared cache: in-memory only, or
// memory-over-Redis when Redis is enabled.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	host, port := splitHostPort(cfg.Redis.Addr)
	c, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(c), nil
}

// ProvideMarketStream creates the live quote stream, or nil when disabled.
func ProvideMarketStream(cfg *config.Config) repository.MarketStream {
	if !cfg.Market.StreamEnabled {
		return nil
	}
	return marketdata.New(
		cfg.Market.APIKey,
		cfg.Market.WebSocketURL,
		cfg.MarketSymbols(),
		cfg.Market.ReconnectDelay,
		cfg.Market.PingInterval,
	)
}

// ProvideDerivedProvider creates the deterministic market fallback.
func ProvideDerivedProvider(profiles repository.ProfileStore) *market.DerivedProvider {
	return market.NewDerivedProvider(profiles)
}

// ProvideMarketCollector creates the live market collector, nil without a stream.
func ProvideMarketCollector(
	stream repository.MarketStream,
	profiles repository.ProfileStore,
	derived *market.DerivedProvider,
	m repository.Metrics,
) *usecase.MarketCollector {
	if stream == nil {
		return nil
	}
	return usecase.NewMarketCollector(stream, profiles, derived, m)
}

// ProvideMarketProvider picks the snapshot source and layers response
// caching. Preference: live stream, then REST quotes, then derived.
func ProvideMarketProvider(
	cfg *config.Config,
	collector *usecase.MarketCollector,
	derived *market.DerivedProvider,
	profiles repository.ProfileStore,
	c pkgcache.Service,
	l *applogger.Logger,
) domsvc.MarketProvider {
	var source domsvc.MarketProvider = derived
	if cfg.Market.APIKey != "" && cfg.Market.RESTURL != "" {
		source = market.NewRESTProvider(profiles, derived, cfg.Market.RESTURL, cfg.Market.APIKey)
	}
	if collector != nil {
		source = collector
	}
	return market.NewCachedProvider(source, c, l)
}

// ProvideFeedService creates the feed generation use case.
func ProvideFeedService(
	profiles repository.ProfileStore,
	gen domsvc.HeadlineGenerator,
	mp domsvc.MarketProvider,
	engine *signal.Engine,
	proc *usecase.EventProcessor,
	m repository.Metrics,
	tuning simulation.Tuning,
	l *applogger.Logger,
) *usecase.FeedService {
	return usecase.NewFeedService(profiles, gen, mp, engine, proc, m, tuning, l)
}

// ProvideFeedAggregate creates the fan-out use case.
func ProvideFeedAggregate(feeds *usecase.FeedService) *usecase.FeedAggregateUseCase {
	return usecase.NewFeedAggregateUseCase(feeds)
}

// ProvideReadingFusion creates the external reading fusion use case.
func ProvideReadingFusion(
	profiles repository.ProfileStore,
	norm *signal.Normalizer,
	engine *signal.Engine,
	proc *usecase.EventProcessor,
	m repository.Metrics,
) *usecase.ReadingFusion {
	return usecase.NewReadingFusion(profiles, norm, engine, proc, m)
}

// ProvideIngestPipeline wraps reading fusion with throttling and buffering.
func ProvideIngestPipeline(fusion *usecase.ReadingFusion, m repository.Metrics) *mid.IngestPipeline {
	return mid.NewIngestPipeline(fusion, m,
		mid.WithMaxRPS(20),
		mid.WithBufferSize(1000),
	)
}

// ProvideReadingsHandler registers the handler for the readings topic.
func ProvideReadingsHandler(cfg *config.Config, pipe *mid.IngestPipeline, m repository.Metrics) pkgkafka.MessageHandler {
	return usecase.NewReadingsHandler(cfg.Kafka.ReadingsTopic, pipe, m)
}

// ProvideKafkaConsumer creates a Kafka consumer, nil for the log backend.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" || cfg.Kafka.ReadingsTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideResponseCache creates the byte cache shared by the polling
// handler and the refresh worker.
func ProvideResponseCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideRefreshQueue creates the Redis-backed job queue, nil when Redis
// is disabled. It carries the feed refresh job and the aggregated log
// batch drain.
func ProvideRefreshQueue(cfg *config.Config, l *applogger.Logger, feeds *usecase.FeedService, respCache icache.BytesCache, producer *pkgkafka.Producer) *queue.RedisQueue {
	if !cfg.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	qc := &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		QueueSize:  cfg.Queue.QueueSize,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}
	refresh := usecase.NewRefreshJob(feeds, l)
	refresh.SetResponseCache(respCache)
	logs := usecase.NewLogBatchJob(producer, cfg.Kafka.LogsTopic, l)
	return queue.NewRedisConsumer(l, qc, client, []queue.Job{refresh, logs})
}

// ProvideHTTPHandler assembles the HTTP surface.
func ProvideHTTPHandler(
	cfg *config.Config,
	l *applogger.Logger,
	feeds *usecase.FeedService,
	agg *usecase.FeedAggregateUseCase,
	mp domsvc.MarketProvider,
	jobQueue *queue.RedisQueue,
	respCache icache.BytesCache,
) xhttp.Handler {
	h := api.NewFeedEchoHandler(l, feeds, agg, mp)
	if jobQueue != nil {
		h.SetRefreshQueue(jobQueue)
	}

	cached := api.NewFeedHandler(feeds)
	cached.SetCache(respCache)
	cached.SetLogger(l)
	h.SetCachedHandler(cached)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.MarketCollector,
	pipe *mid.IngestPipeline,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	jobQueue *queue.RedisQueue,
	httpHandler xhttp.Handler,
	proc *usecase.EventProcessor,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	// Aggregate noisy logs through the queue when Redis is available
	if jobQueue != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          usecase.LogBatchJobType,
			Publisher:      jobQueue,
		})
	}
	app := server.New(cfg, l, collector, pipe, consumer, kh, jobQueue)
	app.SetHTTPHandler(httpHandler)
	app.EventProc = proc
	return app
}

func splitHostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		if addr != "" {
			return addr, 6379
		}
		return "localhost", 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		port = 6379
	}
	return host, port
}
