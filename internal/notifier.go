package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Roma7-7-7/weekly-slack-reminder/pkg/clock"
	"github.com/Roma7-7-7/weekly-slack-reminder/pkg/slack"
)

const (
	ReminderText = "👋 *Hey team!*\n\n" +
		"It’s time for your *weekly update*.\n\n" +
		"Please share your progress along with Jira ticket numbers and a brief status.\n\n" +
		"Thank you! 🙌"

	DeliveredBody = "Message sent to Slack!"
)

var ErrMissingChannel = errors.New("slack channel id is not set")

type (
	MessagePublisher interface {
		PostMessage(ctx context.Context, msg slack.PostMessageRequest) (*slack.PostMessageResponse, error)
	}

	Outcome struct {
		StatusCode int
		Body       string
		Channel    string
		Timestamp  string
		SentAt     time.Time
	}

	Notifier struct {
		publisher MessagePublisher
		channelID string

		clock clock.Interface
		log   *slog.Logger
	}
)

func NewNotifier(publisher MessagePublisher, channelID string, clock clock.Interface, log *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		channelID: channelID,
		clock:     clock,
		log:       log,
	}
}

// Notify posts ReminderText to the configured channel. Any returned error is a *NotificationError.
func (n *Notifier) Notify(ctx context.Context) (*Outcome, error) {
	if n.channelID == "" {
		return nil, &NotificationError{Kind: KindConfiguration, Err: ErrMissingChannel}
	}

	n.log.InfoContext(ctx, "sending reminder", "channel", n.channelID)

	resp, err := n.publisher.PostMessage(ctx, slack.PostMessageRequest{
		Channel: n.channelID,
		Text:    ReminderText,
	})
	if err != nil {
		nErr := classify(err)
		if nErr.Kind == KindRejected || nErr.Kind == KindMalformed {
			n.log.ErrorContext(ctx, "slack api error",
				"status_code", nErr.StatusCode,
				"body", nErr.Body,
				"error", err)
		} else {
			n.log.ErrorContext(ctx, "failed to send reminder", "kind", nErr.Kind, "error", err)
		}
		return nil, nErr
	}

	n.log.InfoContext(ctx, "message sent successfully to slack", "channel", resp.Channel, "ts", resp.Timestamp)

	return &Outcome{
		StatusCode: http.StatusOK,
		Body:       DeliveredBody,
		Channel:    resp.Channel,
		Timestamp:  resp.Timestamp,
		SentAt:     n.clock.Now(),
	}, nil
}

func classify(err error) *NotificationError {
	if errors.Is(err, slack.ErrMissingToken) {
		return &NotificationError{Kind: KindConfiguration, Err: err}
	}

	var apiErr *slack.APIError
	if !errors.As(err, &apiErr) {
		return &NotificationError{Kind: KindTransport, Err: err}
	}

	kind := KindRejected
	if errors.Is(apiErr, slack.ErrMalformedResponse) {
		kind = KindMalformed
	}
	return &NotificationError{
		Kind:       kind,
		StatusCode: apiErr.StatusCode,
		Body:       apiErr.Body,
		Err:        err,
	}
}

type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindTransport     ErrorKind = "transport"
	KindRejected      ErrorKind = "rejected"
	KindMalformed     ErrorKind = "malformed"
)

type NotificationError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *NotificationError) Error() string {
	switch e.Kind {
	case KindRejected, KindMalformed:
		return fmt.Sprintf("send message to slack: %s: status %d: %s", e.Kind, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("send message to slack: %s: %v", e.Kind, e.Err)
	}
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
