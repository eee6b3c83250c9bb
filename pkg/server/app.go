package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"GeoPulse/internal/middleware"
	"GeoPulse/internal/usecase"
	"GeoPulse/pkg/config"
	xhttp "GeoPulse/pkg/http"
	pkgkafka "GeoPulse/pkg/kafka"
	applogger "GeoPulse/pkg/logger"
	"GeoPulse/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	collector   *usecase.MarketCollector
	pipeline    *middleware.IngestPipeline
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	jobQueue    *queue.RedisQueue
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	EventProc   *usecase.EventProcessor
}

// New creates a new App instance with all dependencies. Optional
// components (market collector, kafka consumer, redis queue) may be nil.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.MarketCollector,
	pipeline *middleware.IngestPipeline,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	jobQueue *queue.RedisQueue,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		pipeline:  pipeline,
		consumer:  consumer,
		kh:        kh,
		jobQueue:  jobQueue,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger
	if l == nil {
		l, _ = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start ingest pipeline before anything that feeds it
	if a.pipeline != nil {
		a.pipeline.Start(ctx)
		l.Info("ingest pipeline started")
	}

	// Start market collector when live streaming is enabled
	if a.collector != nil && a.cfg.Market.StreamEnabled {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("market collector error", applogger.Error(err))
			}
		}()
		l.Info("market collector started", applogger.Strings("symbols", a.cfg.MarketSymbols()))
	}

	// Start readings consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start background refresh queue
	if a.jobQueue != nil {
		if err := a.jobQueue.Start(); err != nil {
			l.Error("queue start error", applogger.Error(err))
		} else {
			a.jobQueue.StartRetryProcessor()
			l.Info("refresh queue started", applogger.Int("workers", a.cfg.Queue.Workers))
		}
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger
	if l == nil {
		var err error
		l, err = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
		if err != nil {
			log.Printf("failed to create logger: %v", err)
			return err
		}
	}
	l.Info("shutting down...")

	// Shutdown HTTP server first so no new work arrives
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop readings consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Stop market collector (stream + windows)
	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("market collector stop error", applogger.Error(err))
		}
	}

	// Stop refresh queue
	if a.jobQueue != nil {
		if err := a.jobQueue.Stop(ctx); err != nil {
			l.Warn("queue stop error", applogger.Error(err))
		}
	}

	// Drain ingest pipeline
	if a.pipeline != nil {
		a.pipeline.Stop()
	}

	// Close event publishers (kafka producer / log sink)
	if a.EventProc != nil {
		a.EventProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}
