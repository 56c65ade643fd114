package admin

import (
	"time"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha issues an image captcha challenge for the login form.
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"enabled":    true,
		"captcha_id": challenge.CaptchaID,
		"image":      challenge.ImageBase64,
	})
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// Login signs an administrator in.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
	})
}

// OAuthLoginRequest is the admin provider sign-in payload.
type OAuthLoginRequest struct {
	Provider   string `json:"provider" binding:"required"`
	Credential string `json:"credential" binding:"required"`
}

// OAuthLogin signs an administrator in with a verified provider
// credential. Emails without an admin account fail; there is no user
// fallback on this surface.
func (h *Handler) OAuthLogin(c *gin.Context) {
	var req OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	result, err := h.OAuthService.ResolveAdmin(c.Request.Context(), req.Provider, req.Credential)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
		"admin": gin.H{
			"id":       result.Admin.ID,
			"username": result.Admin.Username,
			"is_super": result.Admin.IsSuper,
		},
	})
}

// UpdatePasswordRequest is the password change payload.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdatePassword changes the signed-in administrator's password.
func (h *Handler) UpdatePassword(c *gin.Context) {
	adminID, ok := shared.GetContextUint(c, shared.ContextKeyAdminID)
	if !ok {
		return
	}
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "password updated", nil)
}

// GetDashboard returns the back-office overview counters.
func (h *Handler) GetDashboard(c *gin.Context) {
	orderCounts, err := h.OrderService.CountByStatus()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"orders_by_status": orderCounts,
	})
}
