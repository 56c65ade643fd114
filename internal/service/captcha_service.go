package service

import (
	"strings"
	"time"

	"github.com/ratna-shop/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge is an image captcha handed to the admin login page.
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService issues and verifies image captchas for admin login.
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService creates the captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = 10240
	}
	expireSeconds := cfg.ExpireSeconds
	if expireSeconds <= 0 {
		expireSeconds = 300
	}
	return &CaptchaService{
		cfg:   cfg,
		store: base64Captcha.NewMemoryStore(maxStore, time.Duration(expireSeconds)*time.Second),
	}
}

// Enabled reports whether admin login requires a captcha.
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge creates a new captcha image.
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	length := s.cfg.Length
	if length <= 0 {
		length = 4
	}
	width := s.cfg.Width
	if width <= 0 {
		width = 240
	}
	height := s.cfg.Height
	if height <= 0 {
		height = 80
	}

	driver := base64Captcha.NewDriverString(
		height,
		width,
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		length,
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks a captcha answer. A disabled captcha always passes.
func (s *CaptchaService) Verify(captchaID, captchaCode string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	captchaCode = strings.TrimSpace(captchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaInvalid
	}
	if !s.store.Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
