package public

import (
	"context"
	"strings"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// UserLoginRequest is the email/password login payload.
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLogin signs a user in with email and password.
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, token, expiresAt, err := h.UserAuthService.LoginWithPassword(email, req.Password)
	if err != nil {
		h.recordLogin(c, nil, email, constants.LoginProviderPassword, err)
		shared.RespondServiceError(c, err)
		return
	}
	h.recordLogin(c, user, email, constants.LoginProviderPassword, nil)

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// OTPRequestRequest asks for a login code over WhatsApp.
type OTPRequestRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// RequestOTP issues a one-time login code to a phone number.
func (h *Handler) RequestOTP(c *gin.Context) {
	var req OTPRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.OTPService.Issue(c.Request.Context(), req.Phone); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// OTPVerifyRequest is the code verification payload.
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyOTP checks a one-time code and signs the user in, creating
// the account on first login.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	phone, err := service.NormalizePhone(req.Phone)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	if err := h.OTPService.Verify(c.Request.Context(), phone, req.Code); err != nil {
		h.recordLogin(c, nil, phone, constants.LoginProviderOTP, err)
		shared.RespondServiceError(c, err)
		return
	}

	user, token, expiresAt, isNew, err := h.UserAuthService.LoginWithOTP(phone)
	if err != nil {
		h.recordLogin(c, nil, phone, constants.LoginProviderOTP, err)
		shared.RespondServiceError(c, err)
		return
	}
	h.recordLogin(c, user, user.Email, constants.LoginProviderOTP, nil)

	response.Success(c, gin.H{
		"token":       token,
		"expires_at":  expiresAt,
		"user":        user,
		"is_new_user": isNew,
	})
}

// OAuthRequest carries a provider credential (Google ID token or
// Facebook access token).
type OAuthRequest struct {
	Provider   string `json:"provider" binding:"required"`
	Credential string `json:"credential" binding:"required"`
}

// OAuthLogin signs an existing account in with a provider credential.
func (h *Handler) OAuthLogin(c *gin.Context) {
	h.resolveOAuth(c, h.OAuthService.ResolveLogin)
}

// OAuthSignup signs in or registers an account with a provider
// credential. An existing email resolves to the existing account.
func (h *Handler) OAuthSignup(c *gin.Context) {
	h.resolveOAuth(c, h.OAuthService.ResolveSignup)
}

func (h *Handler) resolveOAuth(c *gin.Context, resolve func(ctx context.Context, provider, credential string) (*service.OAuthResult, error)) {
	var req OAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	result, err := resolve(c.Request.Context(), provider, req.Credential)
	if err != nil {
		h.recordLogin(c, nil, "", provider, err)
		shared.RespondServiceError(c, err)
		return
	}

	data := gin.H{
		"kind":       string(result.Kind),
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	}
	switch result.Kind {
	case service.OAuthAccountAdmin:
		data["admin"] = result.Admin
	case service.OAuthAccountUser:
		data["user"] = result.User
		data["is_new_user"] = result.IsNewUser
		h.recordLogin(c, result.User, result.User.Email, provider, nil)
	}
	response.Success(c, data)
}

func (h *Handler) recordLogin(c *gin.Context, user *models.User, email, provider string, loginErr error) {
	input := service.RecordLoginInput{
		Email:     email,
		Provider:  provider,
		Status:    constants.LoginStatusSuccess,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if user != nil {
		input.UserID = &user.ID
	}
	if loginErr != nil {
		input.Status = constants.LoginStatusFailed
		input.FailReason = loginErr.Error()
	}
	if err := h.UserLoginLogService.Record(input); err != nil {
		shared.RequestLog(c).Warnw("record_login_log_failed", "error", err)
	}
}
