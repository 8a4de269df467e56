package internal

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

type (
	Reminder interface {
		Notify(ctx context.Context) (*Outcome, error)
	}

	LambdaHandler struct {
		reminder Reminder
		log      *slog.Logger
	}
)

func NewLambdaHandler(reminder Reminder, log *slog.Logger) *LambdaHandler {
	return &LambdaHandler{
		reminder: reminder,
		log:      log,
	}
}

// HandleRequest is invoked by the EventBridge schedule. The event content never affects the message.
func (h *LambdaHandler) HandleRequest(ctx context.Context, event events.CloudWatchEvent) (events.APIGatewayProxyResponse, error) {
	log := h.log
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With("request_id", lc.AwsRequestID)
	}
	log.DebugContext(ctx, "received trigger", "event_id", event.ID, "source", event.Source)

	outcome, err := h.reminder.Notify(ctx)
	if err != nil {
		log.ErrorContext(ctx, "reminder failed", "error", err)
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: outcome.StatusCode,
		Body:       outcome.Body,
	}, nil
}
