package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"github.com/Roma7-7-7/weekly-slack-reminder/pkg/slack"
	pkgSSM "github.com/Roma7-7-7/weekly-slack-reminder/pkg/ssm"
)

const (
	defaultSchedule = "0 10 * * 1"
	defaultLocation = "UTC"

	ssmPrefix = "/weekly-slack-reminder/prod/"
)

var ErrMissingConfig = errors.New("required environment variables not set")

type Config struct {
	Dev            bool
	DryRun         bool
	SlackToken     string
	SlackChannelID string
	SlackAPIURL    string
	Schedule       string
	Location       string
}

// GetConfig reads configuration from the environment. Slack credentials missing from the
// environment are looked up in SSM Parameter Store, except in dev mode.
func GetConfig(ctx context.Context) (*Config, error) {
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	res, err := LoadConfig(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	if res.Dev || res.hasRequiredParams() {
		if err := res.validate(); err != nil {
			return nil, err
		}
		return res, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config (set required env vars to skip SSM): %w", err)
	}

	if err := res.fetchSecrets(ctx, ssm.NewFromConfig(cfg)); err != nil {
		return nil, err
	}

	if err := res.validate(); err != nil {
		return nil, err
	}

	return res, nil
}

// LoadConfig builds a Config from lookup without touching SSM or validating required values.
func LoadConfig(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	res := &Config{
		Dev:            get("ENV") == "dev",
		SlackToken:     get("SLACK_BOT_TOKEN"),
		SlackChannelID: get("SLACK_CHANNEL_ID"),
		SlackAPIURL:    get("SLACK_API_URL"),
		Schedule:       get("SCHEDULE"),
		Location:       get("LOCATION"),
	}

	if v := get("DRY_RUN"); v != "" {
		dryRun, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse DRY_RUN: %w", err)
		}
		res.DryRun = dryRun
	}

	if res.SlackAPIURL == "" {
		res.SlackAPIURL = slack.DefaultBaseURL
	}
	if res.Schedule == "" {
		res.Schedule = defaultSchedule
	}
	if res.Location == "" {
		res.Location = defaultLocation
	}

	return res, nil
}

func (c *Config) fetchSecrets(ctx context.Context, client pkgSSM.Client) error {
	params := make(map[string]*string, 2) //nolint:mnd // token and channel
	if c.SlackToken == "" {
		params["slack-bot-token"] = &c.SlackToken
	}
	if c.SlackChannelID == "" {
		params["slack-channel-id"] = &c.SlackChannelID
	}

	err := pkgSSM.FetchParameters(ctx, client, params, pkgSSM.WithDecryption(), pkgSSM.WithPrefix(ssmPrefix))
	if err != nil {
		return fmt.Errorf("fetch SSM parameters (set required env vars to skip SSM): %w", err)
	}
	return nil
}

// hasRequiredParams checks if all required parameters are already set via environment variables
func (c *Config) hasRequiredParams() bool {
	return c.SlackToken != "" && c.SlackChannelID != ""
}

func (c *Config) validate() error {
	var missing []string

	if c.SlackToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if c.SlackChannelID == "" {
		missing = append(missing, "SLACK_CHANNEL_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingConfig, missing)
	}

	return nil
}
