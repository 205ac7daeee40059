package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/lib/kafkalib"
	"github.com/artie-labs/credit-approval/models/artifact"
)

type Publisher struct {
	topic  string
	client *kgo.Client
}

func (p *Publisher) Label() string {
	return "kafka"
}

// buildRecord keys the record by run ID so that retries of the same run land on the same partition.
func buildRecord(topic string, envelope artifact.Envelope) (*kgo.Record, error) {
	value, err := envelope.Marshal()
	if err != nil {
		return nil, err
	}

	return &kgo.Record{
		Topic: topic,
		Key:   []byte(envelope.RunID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}, nil
}

func (p *Publisher) Notify(ctx context.Context, envelope artifact.Envelope) error {
	record, err := buildRecord(p.topic, envelope)
	if err != nil {
		return err
	}

	if err = p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to kafka: %w", err)
	}

	slog.Info("Published artifact to kafka", slog.String("topic", p.topic), slog.String("runID", envelope.RunID.String()))
	return nil
}

func (p *Publisher) Close() error {
	p.client.Close()
	return nil
}

func brokers(bootstrapServer string) []string {
	var out []string
	for _, broker := range strings.Split(bootstrapServer, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			out = append(out, broker)
		}
	}

	return out
}

func LoadPublisher(ctx context.Context, settings *config.Kafka) (*Publisher, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate settings: %w", err)
	}

	conn := kafkalib.NewConnection(settings.EnableAWSMSKIAM, settings.DisableTLS, settings.Username, settings.Password, kafkalib.DefaultTimeout)
	opts, err := conn.ClientOptions(ctx, brokers(settings.BootstrapServer))
	if err != nil {
		return nil, fmt.Errorf("failed to build kafka client options: %w", err)
	}

	client, err := kgo.NewClient(append(opts, kgo.DefaultProduceTopic(settings.Topic))...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	slog.Info("Kafka publisher loaded", slog.String("kafka", settings.String()), slog.Any("mechanism", conn.Mechanism()))
	return &Publisher{topic: settings.Topic, client: client}, nil
}
