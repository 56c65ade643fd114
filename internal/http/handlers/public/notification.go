package public

import (
	"strings"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the user's notifications, newest first.
func (h *Handler) GetNotifications(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	page, pageSize := shared.QueryPagination(c)

	notifications, total, err := h.NotificationService.List(repository.NotificationListFilter{
		UserID:     userID,
		Kind:       strings.TrimSpace(c.Query("kind")),
		UnreadOnly: c.Query("unread") == "true",
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, notifications, shared.BuildPagination(page, pageSize, total))
}

// GetUnreadCount returns the unread notification count.
func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}

	count, err := h.NotificationService.CountUnread(userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"unread": count})
}

// MarkNotificationsReadRequest selects notifications to mark read. An
// empty list means all.
type MarkNotificationsReadRequest struct {
	IDs []uint `json:"ids"`
}

// MarkNotificationsRead marks the selected notifications as read.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	var req MarkNotificationsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	var (
		updated int64
		err     error
	)
	if len(req.IDs) == 0 {
		updated, err = h.NotificationService.MarkAllRead(userID)
	} else {
		updated, err = h.NotificationService.MarkRead(userID, req.IDs)
	}
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": updated})
}

// DeleteNotification removes one of the user's notifications.
func (h *Handler) DeleteNotification(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.NotificationService.Delete(userID, id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact records a contact message from the signed-in user.
func (h *Handler) SubmitContact(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.NotificationService.NotifyContact(userID, req.Subject, req.Message); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"submitted": true})
}
