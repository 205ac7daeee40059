package webhooksclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/lib/webhooksutil"
)

// Client wraps [webhooksutil.WebhooksClient] so that callers do not need to care whether webhooks are enabled.
// Delivery failures are logged and never fail the run.
type Client struct {
	client  *webhooksutil.WebhooksClient
	enabled bool
}

func NewFromConfig(cfg *config.WebhookSettings) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}

	client, err := webhooksutil.NewWebhooksClient(cfg.APIKey, cfg.URL, webhooksutil.DataIngestion, cfg.Properties)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhooks client: %w", err)
	}

	return &Client{
		client:  &client,
		enabled: true,
	}, nil
}

func (c *Client) IsEnabled() bool {
	return c != nil && c.enabled && c.client != nil
}

func (c *Client) SendEvent(ctx context.Context, eventType webhooksutil.EventType, eventContext map[string]any) {
	if !c.IsEnabled() {
		return
	}

	if err := c.client.SendEvent(ctx, eventType, eventContext); err != nil {
		slog.Warn("Failed to send webhook event", slog.String("event", string(eventType)), slog.Any("err", err))
	}
}
