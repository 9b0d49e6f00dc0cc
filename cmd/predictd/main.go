package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carebox/diabetes-risk/internal/application/usecase"
	"github.com/carebox/diabetes-risk/internal/domain/port"
	"github.com/carebox/diabetes-risk/internal/domain/service"
	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/internal/infrastructure/config"
	"github.com/carebox/diabetes-risk/internal/infrastructure/messaging"
	"github.com/carebox/diabetes-risk/internal/infrastructure/telemetry"
	grpcpresentation "github.com/carebox/diabetes-risk/internal/presentation/grpc"
	"github.com/carebox/diabetes-risk/internal/presentation/rest"
	"github.com/carebox/diabetes-risk/pkg/kafka"
	"github.com/carebox/diabetes-risk/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("prediction-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: config.ServiceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting prediction-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"artifact_source", cfg.Artifacts.Source,
	)

	// Initialize tracing when an exporter endpoint is configured.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: config.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
			SampleRatio: cfg.TraceSampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName:  config.ServiceName,
		GoCollectors: true,
	})
	if err != nil {
		return err
	}
	defer meterProvider.Shutdown(context.Background())

	predictionMetrics, err := telemetry.NewPredictionMetrics(meterProvider)
	if err != nil {
		return err
	}

	// Load artifacts. Failure is fatal: the service never serves without a model.
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Artifacts.LoadTimeout)
	defer loadCancel()

	source, closeSource, err := artifact.Open(loadCtx, cfg.ArtifactSource(), logger)
	if err != nil {
		return fmt.Errorf("open artifact source: %w", err)
	}
	store, err := artifact.Load(loadCtx, source, logger)
	closeSource()
	if err != nil {
		return err
	}

	// Wire event publishing.
	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Wire domain services and use cases.
	predictor := service.NewPredictor(store, cfg.Thresholds)
	predictUC := usecase.NewPredictDiabetes(predictor, publisher, predictionMetrics, logger)
	modelInfoUC := usecase.NewGetModelInfo(store)

	// gRPC server.
	grpcHandler := grpcpresentation.NewPredictionServiceHandler(predictUC, modelInfoUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		HealthName:  config.ServiceName,
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Prediction:     rest.NewPredictionHandler(predictUC, modelInfoUC, logger),
		Health:         rest.NewHealthHandler(config.ServiceName, modelInfoUC),
		Metrics:        metricsHandler,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("prediction-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"model", store.Metadata().Name,
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down prediction-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("prediction-service stopped")
	return serveErr
}

// newPublisher returns a Kafka publisher when brokers are configured and a
// logging publisher otherwise.
func newPublisher(cfg *config.Config, logger *slog.Logger) (port.EventPublisher, func(), error) {
	if !cfg.Kafka.Enabled() {
		logger.Info("KAFKA_BROKERS not set, prediction events are logged only")
		return messaging.NewLogPublisher(logger), func() {}, nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.KafkaTopic)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka producer: %w", err)
	}
	logger.Info("publishing prediction events", "brokers", cfg.Kafka.Brokers, "topic", cfg.KafkaTopic)

	return messaging.NewKafkaPublisher(producer, logger), func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", "error", err)
		}
	}, nil
}
