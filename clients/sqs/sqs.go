package sqs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artie-labs/credit-approval/lib/awslib"
	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/models/artifact"
)

type Publisher struct {
	settings  config.SQSSettings
	sqsClient awslib.SQSClient
}

func (p Publisher) Label() string {
	return "sqs"
}

func buildMessageBody(envelope artifact.Envelope) (string, error) {
	data, err := envelope.Marshal()
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Notify sends [envelope] as a single JSON message to the configured queue.
func (p Publisher) Notify(ctx context.Context, envelope artifact.Envelope) error {
	body, err := buildMessageBody(envelope)
	if err != nil {
		return err
	}

	messageID, err := p.sqsClient.SendMessage(ctx, p.settings.QueueURL, body)
	if err != nil {
		return err
	}

	slog.Info("Published artifact to sqs", slog.String("queueURL", p.settings.QueueURL), slog.String("messageID", messageID))
	return nil
}

func LoadPublisher(ctx context.Context, settings *config.SQSSettings) (*Publisher, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate settings: %w", err)
	}

	awsConfig, err := awslib.LoadConfig(ctx, settings.AwsRegion, settings.AwsAccessKeyID, settings.AwsSecretAccessKey)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		settings:  *settings,
		sqsClient: awslib.NewSQSClient(awsConfig),
	}, nil
}
