package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/artie-labs/credit-approval/lib/awslib"
	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/lib/jitter"
	"github.com/artie-labs/credit-approval/lib/parquetutil"
	"github.com/artie-labs/credit-approval/lib/redact"
	"github.com/artie-labs/credit-approval/lib/retry"
	"github.com/artie-labs/credit-approval/lib/spreadsheet"
	"github.com/artie-labs/credit-approval/lib/telemetry/metrics/base"
	webhooksclient "github.com/artie-labs/credit-approval/lib/webhooksClient"
	"github.com/artie-labs/credit-approval/lib/webhooksutil"
	"github.com/artie-labs/credit-approval/models/artifact"
)

const (
	uploadsMetric       = "publish.uploads"
	notificationsMetric = "publish.notifications"

	uploadMaxAttempts = 3
	uploadJitterBase  = 100
)

// Uploader copies a local file to object storage and returns its URI.
type Uploader interface {
	Label() string
	Upload(ctx context.Context, envelope artifact.Envelope, localPath string) (string, error)
}

// Notifier announces a finished run to downstream consumers.
type Notifier interface {
	Label() string
	Notify(ctx context.Context, envelope artifact.Envelope) error
}

type Publishers struct {
	Uploaders []Uploader
	Notifiers []Notifier
	Webhooks  *webhooksclient.Client
}

func isRetryableErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrNotExist) {
		return false
	}

	return !awslib.IsClientFault(err)
}

func writeParquet(result artifact.DataIngestionArtifact, parquetPath string) error {
	tbl, err := spreadsheet.Load(result.MergedDataPath, spreadsheet.Options{KeepBlankRows: true})
	if err != nil {
		return fmt.Errorf("failed to read merged data: %w", err)
	}

	if tbl.NumRows() != result.NumRecords {
		return fmt.Errorf("merged data has %d rows, expected %d", tbl.NumRows(), result.NumRecords)
	}

	if err = parquetutil.WriteTable(tbl, parquetPath, parquetutil.DefaultBatchSize); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}

	return nil
}

// upload copies every file to every uploader concurrently. URIs are returned grouped by uploader, in file order.
func upload(ctx context.Context, uploaders []Uploader, envelope artifact.Envelope, files []string, metricsClient base.Client) ([]string, error) {
	retryCfg := retry.NewRetryConfig(retry.NewRetryConfigArgs{
		JitterBaseMs:   uploadJitterBase,
		JitterMaxMs:    jitter.DefaultMaxMs,
		MaxAttempts:    uploadMaxAttempts,
		IsRetryableErr: isRetryableErr,
	})

	uris := make([]string, len(uploaders)*len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, uploader := range uploaders {
		for j, file := range files {
			group.Go(func() error {
				uri, err := retry.WithRetries(groupCtx, retryCfg, func(_ int, _ error) (string, error) {
					return uploader.Upload(groupCtx, envelope, file)
				})
				if err != nil {
					metricsClient.Incr(uploadsMetric, map[string]string{"store": uploader.Label(), "status": "failed"})
					return fmt.Errorf("failed to upload %q to %s: %w", file, uploader.Label(), err)
				}

				metricsClient.Incr(uploadsMetric, map[string]string{"store": uploader.Label(), "status": "success"})
				slog.Info("Uploaded file", slog.String("store", uploader.Label()), slog.String("uri", uri))
				uris[i*len(files)+j] = uri
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return uris, nil
}

func notify(ctx context.Context, notifiers []Notifier, envelope artifact.Envelope, metricsClient base.Client) error {
	for _, notifier := range notifiers {
		if err := notifier.Notify(ctx, envelope); err != nil {
			metricsClient.Incr(notificationsMetric, map[string]string{"sink": notifier.Label(), "status": "failed"})
			return fmt.Errorf("failed to notify %s: %w", notifier.Label(), err)
		}

		metricsClient.Incr(notificationsMetric, map[string]string{"sink": notifier.Label(), "status": "success"})
	}

	return nil
}

// Run publishes a finished ingestion run: an optional parquet copy, uploads to object storage, then notifications.
func Run(ctx context.Context, cfg config.Ingestion, result artifact.DataIngestionArtifact, publishers Publishers, metricsClient base.Client) (artifact.Envelope, error) {
	envelope := artifact.NewEnvelope(uuid.New(), result, time.Now())
	logger := slog.With(slog.String("runID", envelope.RunID.String()))

	files := []string{result.MergedDataPath}
	if cfg.ParquetDataPath != "" {
		if err := writeParquet(result, cfg.ParquetDataPath); err != nil {
			return envelope, err
		}

		logger.Info("Parquet copy written", slog.String("path", cfg.ParquetDataPath))
		envelope.ParquetPath = cfg.ParquetDataPath
		files = append(files, cfg.ParquetDataPath)
	}

	if len(publishers.Uploaders) > 0 {
		uris, err := upload(ctx, publishers.Uploaders, envelope, files, metricsClient)
		if err != nil {
			publishers.Webhooks.SendEvent(ctx, webhooksutil.UploadFailed, map[string]any{
				"run_id": envelope.RunID.String(),
				"error":  redact.Scrub(err.Error()),
			})
			return envelope, err
		}

		envelope.URIs = uris
	}

	if err := notify(ctx, publishers.Notifiers, envelope, metricsClient); err != nil {
		return envelope, err
	}

	publishers.Webhooks.SendEvent(ctx, webhooksutil.IngestionCompleted, map[string]any{
		"run_id":           envelope.RunID.String(),
		"merged_data_path": result.MergedDataPath,
		"num_records":      result.NumRecords,
		"uris":             envelope.URIs,
	})
	logger.Info("Artifact published", slog.Int("uploads", len(envelope.URIs)), slog.Int("notifications", len(publishers.Notifiers)))
	return envelope, nil
}
