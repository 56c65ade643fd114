package service

import (
	"context"
	"strings"
	"time"

	"github.com/ratna-shop/internal/cache"
	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService handles storefront customer authentication.
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserAuthService creates the user auth service.
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// UserJWTClaims are customer session token claims.
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a customer session token.
func (s *UserAuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.UserJWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24 * 7
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT parses and validates a customer session token.
func (s *UserAuthService) ParseJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &UserJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// CheckAccountStatus gates login by account status.
func CheckAccountStatus(user *models.User) error {
	if user == nil {
		return ErrNotRegistered
	}
	switch user.Status {
	case constants.UserStatusBlocked:
		return ErrAccountBlocked
	case constants.UserStatusInactive:
		return ErrAccountSuspended
	default:
		return nil
	}
}

// LoginWithPassword authenticates a customer by email and password.
func (s *UserAuthService) LoginWithPassword(email, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := CheckAccountStatus(user); err != nil {
		return nil, "", time.Time{}, err
	}
	return s.issueSession(user)
}

// LoginWithOTP resolves a session for a phone number whose one-time
// code was just verified, creating the account on first login. The
// bool result reports whether a new account was created.
func (s *UserAuthService) LoginWithOTP(phone string) (*models.User, string, time.Time, bool, error) {
	user, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		return nil, "", time.Time{}, false, err
	}
	if user == nil {
		hash, err := randomPasswordHash()
		if err != nil {
			return nil, "", time.Time{}, false, err
		}
		user = &models.User{
			Email:        placeholderEmailForPhone(phone),
			Phone:        phone,
			PasswordHash: hash,
			DisplayName:  phone,
			Status:       constants.UserStatusActive,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", time.Time{}, false, err
		}
		resolved, token, expiresAt, err := s.issueSession(user)
		return resolved, token, expiresAt, true, err
	}

	if err := CheckAccountStatus(user); err != nil {
		return nil, "", time.Time{}, false, err
	}
	resolved, token, expiresAt, err := s.issueSession(user)
	return resolved, token, expiresAt, false, err
}

// Phone-only accounts still need a unique email column value. The
// placeholder is deterministic so repeated first logins cannot race
// into duplicate rows.
func placeholderEmailForPhone(phone string) string {
	return strings.TrimPrefix(phone, "+") + "@phone.invalid"
}

// IssueSession stamps last login and returns a token for an already
// verified user. Used by the OTP and OAuth flows.
func (s *UserAuthService) IssueSession(user *models.User) (*models.User, string, time.Time, error) {
	if err := CheckAccountStatus(user); err != nil {
		return nil, "", time.Time{}, err
	}
	return s.issueSession(user)
}

func (s *UserAuthService) issueSession(user *models.User) (*models.User, string, time.Time, error) {
	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}
