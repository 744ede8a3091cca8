package notifier

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out, or stdout when out is nil
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Notify prints the summary that would be posted
func (n *DryRunNotifier) Notify(_ context.Context, webhookURL, text string) error {
	fmt.Fprintf(n.out, "--- Webhook (dry run) %s ---\n", redact(webhookURL))
	fmt.Fprintln(n.out, text)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", len(text))
	return nil
}

// redact keeps scheme and host of a webhook URL.
func redact(webhookURL string) string {
	u, err := url.Parse(webhookURL)
	if err != nil || u.Host == "" {
		return "(invalid url)"
	}
	if u.Path == "" || u.Path == "/" {
		return u.Scheme + "://" + u.Host
	}
	return u.Scheme + "://" + u.Host + "/..."
}
