package notifier

import (
	"context"
	"fmt"
)

// Notifier defines the interface for delivering a scan summary
type Notifier interface {
	// Notify sends text to the webhook at webhookURL
	Notify(ctx context.Context, webhookURL, text string) error
}

// NotifierError reports a failed webhook delivery. The webhook URL is left out of
// the message since chat webhook URLs embed their credentials.
type NotifierError struct {
	StatusCode int
	Err        error
}

func (e *NotifierError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook delivery failed: %v", e.Err)
}

func (e *NotifierError) Unwrap() error {
	return e.Err
}
