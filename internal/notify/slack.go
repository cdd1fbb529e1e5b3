// Package notify announces a finished run to external channels.
package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"
)

// Summary describes a finished run
type Summary struct {
	Repository     string
	IssueCount     int
	TrackingNumber int
	TrackingURL    string
	TrackingTitle  string
}

// Notifier publishes a run summary
type Notifier interface {
	Notify(ctx context.Context, summary Summary) error
}

// SlackNotifier posts the summary to a Slack incoming webhook
type SlackNotifier struct {
	WebhookURL string
	HTTPClient *http.Client
}

// NewSlackNotifier creates a SlackNotifier, or returns nil when webhookURL is empty
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	if webhookURL == "" {
		return nil
	}
	return &SlackNotifier{WebhookURL: webhookURL, HTTPClient: http.DefaultClient}
}

// Message formats the summary as Slack mrkdwn text
func Message(summary Summary) string {
	return fmt.Sprintf("Created %d issues in *%s*. Tracking issue: <%s|#%d %s>",
		summary.IssueCount, summary.Repository, summary.TrackingURL, summary.TrackingNumber, summary.TrackingTitle)
}

// Notify posts one webhook message
func (n *SlackNotifier) Notify(ctx context.Context, summary Summary) error {
	client := n.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	msg := &slack.WebhookMessage{Text: Message(summary)}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.WebhookURL, client, msg); err != nil {
		return fmt.Errorf("failed to post Slack notification: %w", err)
	}
	return nil
}
