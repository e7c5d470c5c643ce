package relay

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"keel-relay/internal/discord"
	"keel-relay/internal/keel"
)

type fakeSender struct {
	calls []discord.WebhookMessage
	urls  []string
	ctxs  []context.Context
	errs  []error
	err   error
}

func (f *fakeSender) Execute(ctx context.Context, webhookURL string, msg discord.WebhookMessage) error {
	f.calls = append(f.calls, msg)
	f.urls = append(f.urls, webhookURL)
	f.ctxs = append(f.ctxs, ctx)
	f.errs = append(f.errs, ctx.Err())
	return f.err
}

var fixedNow = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestService(sender Sender, url string) *Service {
	return NewService(sender, Options{
		WebhookURL: url,
		Timeout:    time.Second,
		Now:        func() time.Time { return fixedNow },
	})
}

func TestRelaySendsOneMessage(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender, "https://discord.example/hook")

	res, err := svc.Relay(context.Background(), keel.Payload{Message: "Deploying myapp (registry/myapp:v1.2.3)", CreatedAt: "2024-05-01T12:00:00Z"})
	if err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(sender.calls) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sender.calls))
	}
	msg := sender.calls[0]
	if msg.Username != "Keel Deployments" {
		t.Fatalf("unexpected username: %q", msg.Username)
	}
	if len(msg.Embeds) != 1 || msg.Embeds[0].Description != "Deploying myapp" {
		t.Fatalf("unexpected embeds: %#v", msg.Embeds)
	}
	if sender.urls[0] != "https://discord.example/hook" {
		t.Fatalf("unexpected url: %q", sender.urls[0])
	}
	if len(res.DeliveryID) != 26 {
		t.Fatalf("expected ULID delivery id, got %q", res.DeliveryID)
	}
	if _, ok := sender.ctxs[0].Deadline(); !ok {
		t.Fatal("expected outbound context to carry a deadline")
	}
}

func TestRelayConfigErrorsSkipDelivery(t *testing.T) {
	tests := []struct {
		url  string
		kind ErrorKind
	}{
		{"", KindConfigMissing},
		{"not a url", KindConfigInvalid},
	}
	for _, tt := range tests {
		sender := &fakeSender{}
		svc := newTestService(sender, tt.url)
		_, err := svc.Relay(context.Background(), keel.Payload{Message: "x"})
		if err == nil {
			t.Fatalf("url %q: expected error", tt.url)
		}
		if got := Kind(err); got != tt.kind {
			t.Fatalf("url %q: kind = %q, want %q", tt.url, got, tt.kind)
		}
		if len(sender.calls) != 0 {
			t.Fatalf("url %q: expected no delivery, got %d", tt.url, len(sender.calls))
		}
	}
}

func TestRelayDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: &discord.StatusError{StatusCode: 502, Body: "bad gateway"}}
	svc := newTestService(sender, "https://discord.example/hook")

	_, err := svc.Relay(context.Background(), keel.Payload{Message: "x"})
	if Kind(err) != KindDeliveryFailed {
		t.Fatalf("unexpected kind: %q", Kind(err))
	}
	if UpstreamStatus(err) != 502 {
		t.Fatalf("unexpected upstream status: %d", UpstreamStatus(err))
	}
	if UpstreamStatus(fmt.Errorf("%w: dial", discord.ErrDeliveryFailed)) != 0 {
		t.Fatal("transport errors carry no upstream status")
	}
}

func TestRelayIgnoresCallerCancellation(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender, "https://discord.example/hook")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Relay(ctx, keel.Payload{Message: "x"}); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if err := sender.errs[0]; errors.Is(err, context.Canceled) {
		t.Fatal("outbound context must not inherit inbound cancellation")
	}
}

func TestDeliveryIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newDeliveryID(fixedNow)
		if seen[id] {
			t.Fatalf("duplicate delivery id %s", id)
		}
		seen[id] = true
	}
}
