//go:build wireinject
// +build wireinject

package di

import (
	"GeoPulse/pkg/config"
	"GeoPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Domain configuration
		ProvideProfileStore,
		ProvideSimulationTuning,
		ProvideSignalTuning,

		// Signal services
		ProvideNormalizer,
		ProvideEngine,
		ProvideHeadlineGenerator,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCacheService,
		ProvideResponseCache,
		ProvideRefreshQueue,

		// Market overlay
		ProvideMarketStream,
		ProvideDerivedProvider,
		ProvideMarketCollector,
		ProvideMarketProvider,

		// Use cases
		ProvideEventProcessor,
		ProvideFeedService,
		ProvideFeedAggregate,
		ProvideReadingFusion,
		ProvideIngestPipeline,
		ProvideReadingsHandler,

		// HTTP surface and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
