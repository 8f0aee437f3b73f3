package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://slack.com/api"
	defaultTimeout = 10 * time.Second
)

// Client posts messages to Slack via the Web API.
type Client struct {
	token          string
	defaultChannel string
	baseURL        string
	httpClient     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API base URL. Used by
// tests to target a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Slack client posting to the given default channel.
func NewClient(token, defaultChannel string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("slack token is required")
	}
	if defaultChannel == "" {
		return nil, fmt.Errorf("slack channel is required")
	}

	c := &Client{
		token:          token,
		defaultChannel: defaultChannel,
		baseURL:        defaultBaseURL,
		httpClient:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DefaultChannel returns the channel messages go to when none is given.
func (c *Client) DefaultChannel() string {
	return c.defaultChannel
}

type postMessageRequest struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	TS    string `json:"ts,omitempty"`
}

// PostMessage posts a message to a channel. An empty channel falls back
// to the client default.
func (c *Client) PostMessage(ctx context.Context, channel, text string, blocks []Block) error {
	if channel == "" {
		channel = c.defaultChannel
	}
	if text == "" && len(blocks) == 0 {
		return &OpError{Op: "postMessage", Channel: channel, Err: fmt.Errorf("message cannot be empty")}
	}

	body, err := json.Marshal(postMessageRequest{
		Channel: channel,
		Text:    text,
		Blocks:  blocks,
	})
	if err != nil {
		return &OpError{Op: "postMessage", Channel: channel, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return &OpError{Op: "postMessage", Channel: channel, Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &OpError{Op: "postMessage", Channel: channel, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &OpError{Op: "postMessage", Channel: channel, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &OpError{Op: "postMessage", Channel: channel, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if !result.OK {
		return &OpError{Op: "postMessage", Channel: channel, Err: fmt.Errorf("API error: %s", result.Error)}
	}

	return nil
}
