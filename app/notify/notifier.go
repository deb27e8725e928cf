// Package notify delivers templated messages to moderators and submitters.
// Delivery is best-effort, at-most-once: callers log failures and move on,
// so a mail outage never blocks a submission or an approval.
package notify

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Template keys used by the moderation workflow and the form handlers.
const (
	TemplateNewCommentPending = "new-comment-pending"
	TemplateNewReviewPending  = "new-review-pending"
	TemplateCommentApproved   = "comment-approved"
	TemplateReviewApproved    = "review-approved"
	TemplateContactReceived   = "contact-received"
	TemplateBookingReceived   = "booking-received"
)

// Notifier delivers one message to one recipient.
type Notifier interface {
	Send(templateKey, recipient string, data map[string]any) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// It is the default transport when no SMTP server is configured.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send renders the template and logs the result.
func (n *LogNotifier) Send(templateKey, recipient string, data map[string]any) error {
	subject, body, err := Render(templateKey, data)
	if err != nil {
		return fmt.Errorf("render %s: %v", templateKey, err)
	}
	n.log.Info().
		Str("template", templateKey).
		Str("recipient", recipient).
		Str("subject", subject).
		Msg(body)
	return nil
}

// Recorder captures sends for assertions in tests.
type Recorder struct {
	Sent []RecordedSend
	Fail bool
}

// RecordedSend is one captured notification.
type RecordedSend struct {
	TemplateKey string
	Recipient   string
	Data        map[string]any
}

// Send records the notification, failing if the recorder is set to fail.
func (r *Recorder) Send(templateKey, recipient string, data map[string]any) error {
	if r.Fail {
		return fmt.Errorf("notifier down")
	}
	r.Sent = append(r.Sent, RecordedSend{TemplateKey: templateKey, Recipient: recipient, Data: data})
	return nil
}

// ByTemplate returns the captured sends for one template key.
func (r *Recorder) ByTemplate(templateKey string) []RecordedSend {
	var out []RecordedSend
	for _, s := range r.Sent {
		if s.TemplateKey == templateKey {
			out = append(out, s)
		}
	}
	return out
}
