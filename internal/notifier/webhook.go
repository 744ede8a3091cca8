package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	UserAgent = "teetime-scanner/1.0 (github.com/pfrederiksen/teetime-scanner)"
	Timeout   = 10 * time.Second
)

type webhookPayload struct {
	Text string `json:"text"`
}

// WebhookNotifier posts summaries to an incoming webhook
type WebhookNotifier struct {
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier. A nil client gets a default with Timeout.
func NewWebhookNotifier(client *http.Client) *WebhookNotifier {
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	return &WebhookNotifier{client: client}
}

// Notify posts {"text": text} to webhookURL. Any non-2xx answer is a *NotifierError.
func (n *WebhookNotifier) Notify(ctx context.Context, webhookURL, text string) error {
	body, err := json.Marshal(webhookPayload{Text: text})
	if err != nil {
		return &NotifierError{Err: fmt.Errorf("encoding payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return &NotifierError{Err: fmt.Errorf("creating request: %w", stripURL(err))}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return &NotifierError{Err: fmt.Errorf("posting webhook: %w", stripURL(err))}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NotifierError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}
	return nil
}

// stripURL drops the request URL from net/http errors. Webhook URLs carry
// their credentials in the path.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s %s: %w", uerr.Op, redact(uerr.URL), uerr.Err)
	}
	return err
}
