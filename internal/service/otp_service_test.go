package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/notify/whatsapp"
	"github.com/ratna-shop/internal/queue"

	"github.com/hibiken/asynq"
)

type capturedSender struct {
	payloads []queue.WhatsAppSendPayload
	disabled bool
}

func (c *capturedSender) Enabled() bool {
	return !c.disabled
}

func (c *capturedSender) EnqueueWhatsAppSend(payload queue.WhatsAppSendPayload, opts ...asynq.Option) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

type capturedDirectSender struct {
	to   []string
	body []string
}

func (c *capturedDirectSender) Send(ctx context.Context, to, body string) (*whatsapp.SendResult, error) {
	c.to = append(c.to, to)
	c.body = append(c.body, body)
	return &whatsapp.SendResult{MessageSID: "SM1", Status: "queued"}, nil
}

func newTestOTPService(cfg config.OTPConfig) (*OTPService, *capturedSender) {
	sender := &capturedSender{}
	svc := &OTPService{
		cfg:    cfg,
		store:  newMemoryOTPStore(),
		sender: sender,
		now:    time.Now,
	}
	return svc, sender
}

func TestOTPIssueAndVerify(t *testing.T) {
	svc, sender := newTestOTPService(config.OTPConfig{})
	ctx := context.Background()

	if err := svc.Issue(ctx, "+919876543210"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(sender.payloads) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(sender.payloads))
	}
	if sender.payloads[0].To != "+919876543210" {
		t.Fatalf("unexpected recipient %q", sender.payloads[0].To)
	}

	record, err := svc.store.Get(ctx, "+919876543210")
	if err != nil || record == nil {
		t.Fatalf("stored record: %v %v", record, err)
	}
	if len(record.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", record.Code)
	}

	if err := svc.Verify(ctx, "+919876543210", record.Code); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	// consumed codes cannot be replayed
	if err := svc.Verify(ctx, "+919876543210", record.Code); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid on replay, got %v", err)
	}
}

func TestOTPIssueRespectsSendInterval(t *testing.T) {
	svc, _ := newTestOTPService(config.OTPConfig{SendIntervalSeconds: 60})
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if err := svc.Issue(ctx, "+919876543210"); err != nil {
		t.Fatalf("first Issue: %v", err)
	}

	svc.now = func() time.Time { return base.Add(30 * time.Second) }
	if err := svc.Issue(ctx, "+919876543210"); !errors.Is(err, ErrOTPTooFrequent) {
		t.Fatalf("expected ErrOTPTooFrequent, got %v", err)
	}

	svc.now = func() time.Time { return base.Add(61 * time.Second) }
	if err := svc.Issue(ctx, "+919876543210"); err != nil {
		t.Fatalf("Issue after interval: %v", err)
	}
}

func TestOTPVerifyAttemptLimit(t *testing.T) {
	svc, _ := newTestOTPService(config.OTPConfig{MaxAttempts: 3})
	ctx := context.Background()

	if err := svc.Issue(ctx, "+919876543210"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := svc.Verify(ctx, "+919876543210", "000000"); !errors.Is(err, ErrOTPInvalid) {
			t.Fatalf("attempt %d: expected ErrOTPInvalid, got %v", i, err)
		}
	}

	record, _ := svc.store.Get(ctx, "+919876543210")
	if err := svc.Verify(ctx, "+919876543210", record.Code); !errors.Is(err, ErrOTPMaxAttempts) {
		t.Fatalf("expected ErrOTPMaxAttempts, got %v", err)
	}
}

func TestOTPVerifyExpiredCode(t *testing.T) {
	svc, _ := newTestOTPService(config.OTPConfig{ExpireMinutes: 5})
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if err := svc.Issue(ctx, "+919876543210"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	record, _ := svc.store.Get(ctx, "+919876543210")

	svc.now = func() time.Time { return base.Add(6 * time.Minute) }
	if err := svc.Verify(ctx, "+919876543210", record.Code); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid for expired code, got %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"+919876543210", "+919876543210", true},
		{"  +919876543210  ", "+919876543210", true},
		{"9876543210", "", false},
		{"+0123", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.input)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("NormalizePhone(%q) = %q, %v", tc.input, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("NormalizePhone(%q): expected ErrInvalidPhone, got %v", tc.input, err)
		}
	}
}

func TestOTPIssueFallsBackToDirectSend(t *testing.T) {
	sender := &capturedSender{disabled: true}
	direct := &capturedDirectSender{}
	svc := &OTPService{
		cfg:    config.OTPConfig{},
		store:  newMemoryOTPStore(),
		sender: sender,
		direct: direct,
		now:    time.Now,
	}
	ctx := context.Background()

	if err := svc.Issue(ctx, "+919876543210"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(sender.payloads) != 0 {
		t.Fatalf("expected no queued messages, got %d", len(sender.payloads))
	}
	if len(direct.to) != 1 || direct.to[0] != "+919876543210" {
		t.Fatalf("expected one direct send to +919876543210, got %v", direct.to)
	}

	record, err := svc.store.Get(ctx, "+919876543210")
	if err != nil || record == nil {
		t.Fatalf("stored record: %v %v", record, err)
	}
	if err := svc.Verify(ctx, "+919876543210", record.Code); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestOTPIssueFailsWithoutAnySender(t *testing.T) {
	svc := &OTPService{
		cfg:    config.OTPConfig{},
		store:  newMemoryOTPStore(),
		sender: &capturedSender{disabled: true},
		now:    time.Now,
	}
	if err := svc.Issue(context.Background(), "+919876543210"); !errors.Is(err, ErrOTPDeliveryUnavailable) {
		t.Fatalf("expected ErrOTPDeliveryUnavailable, got %v", err)
	}
}
