package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Roma7-7-7/weekly-slack-reminder/pkg/clock"
	"github.com/Roma7-7-7/weekly-slack-reminder/pkg/slack"
)

const httpTimeout = 10 * time.Second

type App struct {
	Notifier *Notifier
	Location *time.Location

	slackClient *slack.Client
	log         *slog.Logger
}

// NewApp wires the notifier for conf. In dry run mode messages go to the log instead of Slack.
func NewApp(conf *Config, httpClient slack.HTTPClient, log *slog.Logger) (*App, error) {
	loc, err := time.LoadLocation(conf.Location)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", conf.Location, err)
	}
	clk := clock.NewZonedClock(loc)

	if httpClient == nil {
		httpClient = &http.Client{Timeout: httpTimeout}
	}
	slackClient := slack.NewClient(conf.SlackToken, httpClient, log, slack.WithBaseURL(conf.SlackAPIURL))

	var publisher MessagePublisher = slackClient
	if conf.DryRun {
		log.Warn("dry run mode enabled, messages will not be sent")
		publisher = NewStubPublisher(clk, log)
	}

	return &App{
		Notifier:    NewNotifier(publisher, conf.SlackChannelID, clk, log),
		Location:    loc,
		slackClient: slackClient,
		log:         log,
	}, nil
}

// Check verifies the Slack token without posting anything.
func (a *App) Check(ctx context.Context) error {
	identity, err := a.slackClient.AuthTest(ctx)
	if err != nil {
		return fmt.Errorf("check slack credentials: %w", err)
	}

	a.log.InfoContext(ctx, "slack credentials are valid",
		"team", identity.Team,
		"team_id", identity.TeamID,
		"user", identity.User,
		"bot_id", identity.BotID)
	return nil
}
