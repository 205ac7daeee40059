package webhooksutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// WebhooksClient sends events to the webhooks service.
type WebhooksClient struct {
	httpClient http.Client
	properties map[string]any
	source     Source
	url        string
	apiKey     string
}

func NewWebhooksClient(apiKey, url string, source Source, properties map[string]any) (WebhooksClient, error) {
	if apiKey == "" || url == "" {
		return WebhooksClient{}, fmt.Errorf("apiKey and url are required")
	}

	return WebhooksClient{
		httpClient: http.Client{Timeout: defaultTimeout},
		properties: properties,
		source:     source,
		url:        url,
		apiKey:     apiKey,
	}, nil
}

// BuildProperties merges the static properties with the message and severity of [eventType].
func (w WebhooksClient) BuildProperties(eventType EventType) map[string]any {
	out := make(map[string]any, len(w.properties)+3)
	maps.Copy(out, w.properties)
	out["message"] = GetEventMessage(eventType)
	out["severity"] = GetEventSeverity(eventType)
	out["source"] = w.source
	return out
}

func (w WebhooksClient) SendEvent(ctx context.Context, eventType EventType, eventContext map[string]any) error {
	if eventContext == nil {
		eventContext = make(map[string]any)
	}

	body, err := json.Marshal(WebhooksEvent{
		Event:       string(eventType),
		Timestamp:   time.Now().UTC(),
		Properties:  w.BuildProperties(eventType),
		ExtraFields: eventContext,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", w.apiKey))

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
