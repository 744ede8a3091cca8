// Package notifier delivers scan summaries to chat webhooks.
//
// A summary is plain text: one header line, then one line per tee time. The
// WebhookNotifier posts it as {"text": ...}, the payload shape Slack incoming
// webhooks and most compatible chat integrations accept. DryRunNotifier prints
// the summary instead of sending it.
package notifier
