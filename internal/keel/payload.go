// Package keel turns Keel deployment notifications into Discord embeds.
package keel

import (
	"encoding/json"
	"errors"
)

var ErrMissingMessage = errors.New("missing_message")

// Payload is the body Keel posts to its webhook notification sender.
type Payload struct {
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Name      string `json:"name,omitempty"`
}

// UnmarshalJSON requires the message key to be present. Its value may be empty.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message   *string `json:"message"`
		CreatedAt string  `json:"createdAt"`
		Name      string  `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Message == nil {
		return ErrMissingMessage
	}
	*p = Payload{Message: *raw.Message, CreatedAt: raw.CreatedAt, Name: raw.Name}
	return nil
}
