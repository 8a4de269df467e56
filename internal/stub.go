package internal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Roma7-7-7/weekly-slack-reminder/pkg/clock"
	"github.com/Roma7-7-7/weekly-slack-reminder/pkg/slack"
)

// StubPublisher logs messages instead of posting them. Used for dry runs.
type StubPublisher struct {
	clock clock.Interface
	log   Logger
}

func NewStubPublisher(clock clock.Interface, log Logger) *StubPublisher {
	return &StubPublisher{
		clock: clock,
		log:   log,
	}
}

func (p *StubPublisher) PostMessage(ctx context.Context, msg slack.PostMessageRequest) (*slack.PostMessageResponse, error) {
	p.log.InfoContext(ctx, "dry run: message not sent", "channel", msg.Channel, "text", msg.Text)

	res := &slack.PostMessageResponse{
		Channel:    msg.Channel,
		Timestamp:  fmt.Sprintf("%d.000000", p.clock.Now().Unix()),
		StatusCode: http.StatusOK,
	}
	res.Ok = true
	return res, nil
}
