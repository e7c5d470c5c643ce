package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxErrorBodyBytes = 512

type HTTPClient struct {
	inner *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{inner: &http.Client{
		Timeout: timeout,
		// A followed redirect would turn the POST into a second, body-less GET.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

// PostJSON sends body once and returns the status code. Non-2xx answers,
// redirects included, are reported as *StatusError.
func (c *HTTPClient) PostJSON(ctx context.Context, endpoint string, body any) (int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.inner.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.StatusCode, nil
	}
	statusErr := &StatusError{StatusCode: resp.StatusCode}
	bodyRaw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		statusErr.Body = fmt.Sprintf("read response body: %v", err)
	} else {
		statusErr.Body = strings.TrimSpace(string(bodyRaw))
	}
	return resp.StatusCode, statusErr
}
