package discord

import (
	"errors"
	"fmt"
)

var (
	ErrConfigMissing  = errors.New("discord webhook url is not set")
	ErrConfigInvalid  = errors.New("discord webhook url is invalid")
	ErrDeliveryFailed = errors.New("discord webhook delivery failed")
)

// StatusError carries a non-2xx answer from the webhook endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("push failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("push failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrDeliveryFailed
}
