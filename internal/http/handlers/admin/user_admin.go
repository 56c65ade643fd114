package admin

import (
	"strconv"
	"strings"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetUsers lists customer accounts.
func (h *Handler) GetUsers(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	users, total, err := h.UserService.List(repository.UserListFilter{
		Email:    strings.TrimSpace(c.Query("email")),
		Phone:    strings.TrimSpace(c.Query("phone")),
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, users, shared.BuildPagination(page, pageSize, total))
}

// GetUser returns one account with its linked identities.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	identities, err := h.UserService.ListIdentities(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user":       user,
		"identities": identities,
	})
}

// UpdateUserStatusRequest is the account status payload.
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateUserStatus blocks or reactivates an account. Leaving active
// invalidates the account's sessions.
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserService.UpdateStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteUser removes an account and its linked identities.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.UserService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetUserLoginLogs lists authentication attempts.
func (h *Handler) GetUserLoginLogs(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	filter := repository.UserLoginLogFilter{
		Email:    strings.TrimSpace(c.Query("email")),
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(id)
		}
	}

	logs, total, err := h.UserLoginLogService.ListForAdmin(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, logs, shared.BuildPagination(page, pageSize, total))
}
