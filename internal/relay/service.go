// Package relay forwards Keel notifications to Discord.
package relay

import (
	"context"
	"time"

	"keel-relay/internal/discord"
	"keel-relay/internal/keel"
)

type Sender interface {
	Execute(ctx context.Context, webhookURL string, msg discord.WebhookMessage) error
}

type Options struct {
	WebhookURL string
	Username   string
	Timeout    time.Duration
	Now        func() time.Time
}

type Service struct {
	sender     Sender
	webhookURL string
	username   string
	timeout    time.Duration
	now        func() time.Time
}

type Result struct {
	DeliveryID string
	Embed      discord.Embed
}

func NewService(sender Sender, opts Options) *Service {
	s := &Service{
		sender:     sender,
		webhookURL: opts.WebhookURL,
		username:   opts.Username,
		timeout:    opts.Timeout,
		now:        opts.Now,
	}
	if s.username == "" {
		s.username = "Keel Deployments"
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Second
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Relay makes at most one delivery attempt. Configuration problems are
// reported before anything is sent. Cancellation of ctx does not abort an
// attempt already under way; only the service timeout bounds it.
func (s *Service) Relay(ctx context.Context, p keel.Payload) (Result, error) {
	metricReceivedTotal.Add(1)
	now := s.now()
	res := Result{
		DeliveryID: newDeliveryID(now),
		Embed:      keel.BuildEmbed(p, now),
	}
	if _, err := discord.Validate(s.webhookURL); err != nil {
		metricFailedTotal.Add(1)
		return res, err
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	msg := discord.WebhookMessage{
		Username: s.username,
		Embeds:   []discord.Embed{res.Embed},
	}
	if err := s.sender.Execute(sendCtx, s.webhookURL, msg); err != nil {
		metricFailedTotal.Add(1)
		return res, err
	}
	metricDeliveredTotal.Add(1)
	return res, nil
}
