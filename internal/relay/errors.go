package relay

import (
	"errors"

	"keel-relay/internal/discord"
)

type ErrorKind string

const (
	KindConfigMissing  ErrorKind = "config_missing"
	KindConfigInvalid  ErrorKind = "config_invalid"
	KindDeliveryFailed ErrorKind = "delivery_failed"
)

// Kind classifies an error returned by Service.Relay.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, discord.ErrConfigMissing):
		return KindConfigMissing
	case errors.Is(err, discord.ErrConfigInvalid):
		return KindConfigInvalid
	default:
		return KindDeliveryFailed
	}
}

// UpstreamStatus returns the webhook's HTTP status when err came from a non-2xx
// answer, or 0.
func UpstreamStatus(err error) int {
	var statusErr *discord.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
