// Package discord delivers embeds to a Discord execute-webhook endpoint.
package discord

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type Client struct {
	http *HTTPClient
}

func NewClient(httpClient *HTTPClient) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{http: httpClient}
}

// Validate checks a webhook URL without contacting it.
func Validate(webhookURL string) (*url.URL, error) {
	raw := strings.TrimSpace(webhookURL)
	if raw == "" {
		return nil, ErrConfigMissing
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrConfigInvalid, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrConfigInvalid)
	}
	return u, nil
}

// Execute posts msg to the webhook exactly once. The call does not wait for
// Discord to echo the created message.
func (c *Client) Execute(ctx context.Context, webhookURL string, msg WebhookMessage) error {
	u, err := Validate(webhookURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("wait", "false")
	u.RawQuery = q.Encode()

	out := WebhookMessage{Username: msg.Username, Embeds: make([]Embed, len(msg.Embeds))}
	for i, e := range msg.Embeds {
		out.Embeds[i] = e.clamped()
	}

	if _, err := c.http.PostJSON(ctx, u.String(), out); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}
