package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookDispatcher delivers transaction events to a configured HTTP endpoint
// (the email/notification backend). Used by the queue worker, not the API.
type WebhookDispatcher struct {
	URL        string
	HTTPClient *http.Client
}

// NewWebhookDispatcher creates a dispatcher with a short delivery timeout so a
// slow notification backend cannot stall the worker.
func NewWebhookDispatcher(url string) *WebhookDispatcher {
	return &WebhookDispatcher{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Dispatch POSTs the event as JSON to the configured endpoint.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
