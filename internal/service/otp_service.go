package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ratna-shop/internal/cache"
	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/notify/whatsapp"
	"github.com/ratna-shop/internal/queue"

	"github.com/hibiken/asynq"
)

var phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// otpRecord is the stored state of an outstanding one-time code.
type otpRecord struct {
	Code      string    `json:"code"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// otpStore persists outstanding codes. The redis store is used in
// production; the memory store backs tests and redis-less deployments.
type otpStore interface {
	Get(ctx context.Context, phone string) (*otpRecord, error)
	Set(ctx context.Context, phone string, record *otpRecord, ttl time.Duration) error
	Del(ctx context.Context, phone string) error
}

// OTPSender relays a rendered code message through the task queue.
type OTPSender interface {
	Enabled() bool
	EnqueueWhatsAppSend(payload queue.WhatsAppSendPayload, opts ...asynq.Option) error
}

// OTPDirectSender delivers the message inline when no queue is running.
type OTPDirectSender interface {
	Send(ctx context.Context, to, body string) (*whatsapp.SendResult, error)
}

// OTPService issues and verifies WhatsApp one-time login codes.
type OTPService struct {
	cfg    config.OTPConfig
	store  otpStore
	sender OTPSender
	direct OTPDirectSender
	now    func() time.Time
}

// NewOTPService creates the OTP service. The store falls back to an
// in-process map when redis is not configured.
func NewOTPService(cfg config.OTPConfig, sender OTPSender, direct OTPDirectSender) *OTPService {
	var store otpStore
	if cache.Enabled() {
		store = &redisOTPStore{}
	} else {
		store = newMemoryOTPStore()
	}
	return &OTPService{
		cfg:    cfg,
		store:  store,
		sender: sender,
		direct: direct,
		now:    time.Now,
	}
}

// Issue generates a code for the phone number and queues the WhatsApp
// message. Repeat requests inside the send interval are rejected.
func (s *OTPService) Issue(ctx context.Context, phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	now := s.now()
	existing, err := s.store.Get(ctx, normalized)
	if err != nil {
		return err
	}
	if existing != nil {
		interval := time.Duration(s.sendIntervalSeconds()) * time.Second
		if now.Sub(existing.SentAt) < interval {
			return ErrOTPTooFrequent
		}
	}

	code, err := randomNumericCode(s.codeLength())
	if err != nil {
		return err
	}
	ttl := time.Duration(s.expireMinutes()) * time.Minute
	record := &otpRecord{
		Code:      code,
		SentAt:    now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.store.Set(ctx, normalized, record, ttl); err != nil {
		return err
	}

	body := fmt.Sprintf("Your Ratna Shop verification code is %s. It expires in %d minutes.", code, s.expireMinutes())
	if s.sender != nil && s.sender.Enabled() {
		return s.sender.EnqueueWhatsAppSend(queue.WhatsAppSendPayload{To: normalized, Body: body})
	}
	// No queue running: deliver inline so the code actually reaches the phone.
	if s.direct != nil {
		_, err := s.direct.Send(ctx, normalized, body)
		return err
	}
	return ErrOTPDeliveryUnavailable
}

// Verify checks a submitted code. A matching code is consumed and
// cannot be replayed.
func (s *OTPService) Verify(ctx context.Context, phone, code string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrOTPInvalid
	}

	record, err := s.store.Get(ctx, normalized)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrOTPInvalid
	}
	now := s.now()
	if record.ExpiresAt.Before(now) {
		_ = s.store.Del(ctx, normalized)
		return ErrOTPInvalid
	}
	if record.Attempts >= s.maxAttempts() {
		return ErrOTPMaxAttempts
	}
	if record.Code != code {
		record.Attempts++
		_ = s.store.Set(ctx, normalized, record, record.ExpiresAt.Sub(now))
		return ErrOTPInvalid
	}

	return s.store.Del(ctx, normalized)
}

// NormalizePhone trims a phone number and checks it is in E.164 form.
func NormalizePhone(phone string) (string, error) {
	trimmed := strings.TrimSpace(phone)
	if !phonePattern.MatchString(trimmed) {
		return "", ErrInvalidPhone
	}
	return trimmed, nil
}

func (s *OTPService) expireMinutes() int {
	if s.cfg.ExpireMinutes <= 0 {
		return 10
	}
	return s.cfg.ExpireMinutes
}

func (s *OTPService) sendIntervalSeconds() int {
	if s.cfg.SendIntervalSeconds <= 0 {
		return 60
	}
	return s.cfg.SendIntervalSeconds
}

func (s *OTPService) maxAttempts() int {
	if s.cfg.MaxAttempts <= 0 {
		return 5
	}
	return s.cfg.MaxAttempts
}

func (s *OTPService) codeLength() int {
	if s.cfg.Length < 4 || s.cfg.Length > 10 {
		return 6
	}
	return s.cfg.Length
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(n.String())
	}
	return b.String(), nil
}

type redisOTPStore struct{}

func (r *redisOTPStore) Get(ctx context.Context, phone string) (*otpRecord, error) {
	var record otpRecord
	found, err := cache.GetJSON(ctx, otpCacheKey(phone), &record)
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

func (r *redisOTPStore) Set(ctx context.Context, phone string, record *otpRecord, ttl time.Duration) error {
	return cache.SetJSON(ctx, otpCacheKey(phone), record, ttl)
}

func (r *redisOTPStore) Del(ctx context.Context, phone string) error {
	return cache.Del(ctx, otpCacheKey(phone))
}

func otpCacheKey(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

type memoryOTPStore struct {
	mu      sync.Mutex
	records map[string]*otpRecord
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{records: make(map[string]*otpRecord)}
}

func (m *memoryOTPStore) Get(ctx context.Context, phone string) (*otpRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[phone]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (m *memoryOTPStore) Set(ctx context.Context, phone string, record *otpRecord, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *record
	m.records[phone] = &clone
	return nil
}

func (m *memoryOTPStore) Del(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, phone)
	return nil
}
