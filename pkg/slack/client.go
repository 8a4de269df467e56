package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	goslack "github.com/slack-go/slack"
)

const DefaultBaseURL = "https://slack.com/api"

const maxBodySize = 64 * 1024

var (
	ErrMissingToken      = errors.New("slack token is not set")
	ErrMalformedResponse = errors.New("malformed slack response")
)

type (
	Logger interface {
		DebugContext(ctx context.Context, msg string, fields ...any)
		WarnContext(ctx context.Context, msg string, fields ...any)
	}

	HTTPClient interface {
		Do(req *http.Request) (*http.Response, error)
	}

	PostMessageRequest struct {
		Channel string `json:"channel"`
		Text    string `json:"text"`
	}

	PostMessageResponse struct {
		goslack.SlackResponse

		Channel   string `json:"channel"`
		Timestamp string `json:"ts"`

		// StatusCode and Body are taken from the HTTP exchange, not from the JSON payload.
		StatusCode int    `json:"-"`
		Body       string `json:"-"`
	}

	Identity struct {
		TeamID string
		Team   string
		UserID string
		User   string
		BotID  string
	}

	Client struct {
		token      string
		baseURL    string
		httpClient HTTPClient
		log        Logger
	}

	Option func(*Client)
)

// APIError describes a chat.postMessage exchange Slack did not accept.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("slack api: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("slack api: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func NewClient(token string, httpClient HTTPClient, log Logger, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
		log:        log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PostMessage sends exactly one chat.postMessage request. It succeeds only when Slack answers
// with HTTP 200 and "ok": true.
func (c *Client) PostMessage(ctx context.Context, msg PostMessageRequest) (*PostMessageResponse, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.log.DebugContext(ctx, "sending request",
		"url", req.URL.String(),
		"method", req.Method,
		"channel", msg.Channel)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // ignore

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	res := &PostMessageResponse{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
	}

	if resp.StatusCode != http.StatusOK {
		c.log.WarnContext(ctx, "unexpected status code", "status_code", resp.StatusCode)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: res.Body}
		if err := json.Unmarshal(raw, res); err == nil && res.Error != "" {
			apiErr.Err = goslack.SlackErrorResponse{Err: res.Error}
		}
		return res, apiErr
	}

	if err = json.Unmarshal(raw, res); err != nil {
		return res, &APIError{
			StatusCode: resp.StatusCode,
			Body:       res.Body,
			Err:        fmt.Errorf("%w: %w", ErrMalformedResponse, err),
		}
	}

	if !res.Ok {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: res.Body}
		if res.Error != "" {
			apiErr.Err = goslack.SlackErrorResponse{Err: res.Error}
		}
		return res, apiErr
	}

	return res, nil
}

// AuthTest resolves the identity behind the token through auth.test.
func (c *Client) AuthTest(ctx context.Context) (*Identity, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	api := goslack.New(c.token,
		goslack.OptionHTTPClient(c.httpClient),
		goslack.OptionAPIURL(c.baseURL+"/"),
	)

	c.log.DebugContext(ctx, "sending auth test request", "url", c.baseURL+"/auth.test")

	resp, err := api.AuthTestContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth test: %w", err)
	}

	return &Identity{
		TeamID: resp.TeamID,
		Team:   resp.Team,
		UserID: resp.UserID,
		User:   resp.User,
		BotID:  resp.BotID,
	}, nil
}
