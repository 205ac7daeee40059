package publish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artie-labs/credit-approval/clients/gcs"
	"github.com/artie-labs/credit-approval/clients/kafka"
	"github.com/artie-labs/credit-approval/clients/s3"
	"github.com/artie-labs/credit-approval/clients/sqs"
	"github.com/artie-labs/credit-approval/lib/config"
	webhooksclient "github.com/artie-labs/credit-approval/lib/webhooksClient"
)

// LoadPublishers builds a publisher for every block present in [cfg]. The returned func releases their connections.
func LoadPublishers(ctx context.Context, cfg config.Config) (Publishers, func(), error) {
	var publishers Publishers
	var closers []func() error
	closeAll := func() {
		for _, closer := range closers {
			if err := closer(); err != nil {
				slog.Warn("Failed to close publisher", slog.Any("err", err))
			}
		}
	}

	webhooks, err := webhooksclient.NewFromConfig(cfg.WebhookSettings)
	if err != nil {
		return Publishers{}, closeAll, err
	}
	publishers.Webhooks = webhooks

	if cfg.S3 != nil {
		store, err := s3.LoadStore(ctx, cfg.S3)
		if err != nil {
			return Publishers{}, closeAll, fmt.Errorf("failed to load s3 store: %w", err)
		}
		publishers.Uploaders = append(publishers.Uploaders, store)
	}

	if cfg.GCS != nil {
		store, err := gcs.LoadStore(ctx, cfg.GCS)
		if err != nil {
			return Publishers{}, closeAll, fmt.Errorf("failed to load gcs store: %w", err)
		}
		closers = append(closers, store.Close)
		publishers.Uploaders = append(publishers.Uploaders, store)
	}

	if cfg.SQS != nil {
		publisher, err := sqs.LoadPublisher(ctx, cfg.SQS)
		if err != nil {
			return Publishers{}, closeAll, fmt.Errorf("failed to load sqs publisher: %w", err)
		}
		publishers.Notifiers = append(publishers.Notifiers, publisher)
	}

	if cfg.Kafka != nil {
		publisher, err := kafka.LoadPublisher(ctx, cfg.Kafka)
		if err != nil {
			return Publishers{}, closeAll, fmt.Errorf("failed to load kafka publisher: %w", err)
		}
		closers = append(closers, publisher.Close)
		publishers.Notifiers = append(publishers.Notifiers, publisher)
	}

	return publishers, closeAll, nil
}
