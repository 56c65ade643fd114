package service

import (
	"strings"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"
)

// UserLoginLogService records and queries login attempts.
type UserLoginLogService struct {
	repo repository.UserLoginLogRepository
}

// NewUserLoginLogService creates the login log service.
func NewUserLoginLogService(repo repository.UserLoginLogRepository) *UserLoginLogService {
	return &UserLoginLogService{repo: repo}
}

// RecordLoginInput is one login attempt to record.
type RecordLoginInput struct {
	UserID     *uint
	Email      string
	Provider   string
	Status     string
	FailReason string
	IP         string
	UserAgent  string
}

// Record persists a login attempt. Logging must never break a login,
// so callers ignore the returned error after warning on it.
func (s *UserLoginLogService) Record(input RecordLoginInput) error {
	if s == nil || s.repo == nil {
		return nil
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != constants.LoginStatusSuccess {
		status = constants.LoginStatusFailed
	}
	failReason := strings.ToLower(strings.TrimSpace(input.FailReason))
	if status == constants.LoginStatusSuccess {
		failReason = ""
	}
	provider := strings.ToLower(strings.TrimSpace(input.Provider))
	if provider == "" {
		provider = "password"
	}

	return s.repo.Create(&models.UserLoginLog{
		UserID:     input.UserID,
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Provider:   provider,
		Status:     status,
		FailReason: failReason,
		IP:         strings.TrimSpace(input.IP),
		UserAgent:  strings.TrimSpace(input.UserAgent),
	})
}

// ListForAdmin returns the back-office login log page.
func (s *UserLoginLogService) ListForAdmin(filter repository.UserLoginLogFilter) ([]models.UserLoginLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.UserLoginLog{}, 0, nil
	}
	return s.repo.List(filter)
}

// RecentFailures counts failed attempts for an email since a cutoff.
// Backs the login rate limit.
func (s *UserLoginLogService) RecentFailures(email string, since time.Time) (int64, error) {
	if s == nil || s.repo == nil {
		return 0, nil
	}
	return s.repo.CountRecentFailures(strings.ToLower(strings.TrimSpace(email)), since)
}
