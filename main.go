package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/lib/ingestion"
	"github.com/artie-labs/credit-approval/lib/logger"
	"github.com/artie-labs/credit-approval/lib/redact"
	"github.com/artie-labs/credit-approval/lib/telemetry/metrics"
	"github.com/artie-labs/credit-approval/lib/webhooksutil"
	"github.com/artie-labs/credit-approval/processes/publish"
)

func main() {
	// Parse args into settings.
	settings, err := config.LoadSettings(os.Args[1:])
	if err != nil {
		logger.Fatal("Failed to load settings", slog.Any("err", err))
	}

	// Initialize default logger
	log, closeLogger, err := logger.NewLogger(settings)
	if err != nil {
		logger.Fatal("Failed to initialize logger", slog.Any("err", err))
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, settings, log)
	stop()
	if err != nil {
		logFailure(log, err)
		closeLogger()
		os.Exit(1)
	}

	closeLogger()
}

// logFailure logs [err] unless the ingestion step that produced it already did.
func logFailure(log *slog.Logger, err error) {
	var pipelineErr *ingestion.PipelineError
	if errors.As(err, &pipelineErr) {
		return
	}

	log.Error("Credit approval pipeline failed", slog.Any("err", err))
}

func run(ctx context.Context, settings *config.Settings, log *slog.Logger) error {
	// Loading Telemetry
	metricsClient := metrics.LoadExporter(settings.Config)

	publishers, closePublishers, err := publish.LoadPublishers(ctx, settings.Config)
	defer closePublishers()
	if err != nil {
		return fmt.Errorf("failed to load publishers: %w", err)
	}

	log.Info("Config is loaded",
		slog.String("internalDataPath", settings.Config.Ingestion.InternalDataPath),
		slog.String("externalDataPath", settings.Config.Ingestion.ExternalDataPath),
		slog.String("interimDataPath", settings.Config.Ingestion.InterimDataPath),
		slog.String("mergeKey", settings.Config.Ingestion.MergeKey),
	)

	publishers.Webhooks.SendEvent(ctx, webhooksutil.IngestionStarted, nil)
	result, err := ingestion.New(settings.Config.Ingestion, log, metricsClient).Run(ctx)
	if err != nil {
		eventContext := map[string]any{"error": redact.Scrub(err.Error())}
		var pipelineErr *ingestion.PipelineError
		if errors.As(err, &pipelineErr) {
			eventContext["step"] = string(pipelineErr.Step)
			if file, line, ok := pipelineErr.Location(); ok {
				eventContext["location"] = fmt.Sprintf("%s:%d", file, line)
			}
		}

		publishers.Webhooks.SendEvent(ctx, webhooksutil.IngestionFailed, eventContext)
		return err
	}

	if _, err = publish.Run(ctx, settings.Config.Ingestion, result, publishers, metricsClient); err != nil {
		return fmt.Errorf("failed to publish artifact: %w", err)
	}

	return nil
}
