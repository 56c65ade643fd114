package public

import (
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the signed-in user's account.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	identities, err := h.UserService.ListIdentities(userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user":       user,
		"identities": identities,
	})
}

// UpdateProfileRequest is the editable profile payload.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// UpdateProfile updates display name and phone.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserService.UpdateProfile(userID, req.DisplayName, req.Phone)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// AddressRequest is the address book payload.
type AddressRequest struct {
	RecipientName  string `json:"recipient_name" binding:"required"`
	RecipientPhone string `json:"recipient_phone" binding:"required"`
	AddressLine1   string `json:"address_line1" binding:"required"`
	AddressLine2   string `json:"address_line2"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	Pincode        string `json:"pincode" binding:"required"`
	Country        string `json:"country"`
	IsDefault      bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		RecipientName:  r.RecipientName,
		RecipientPhone: r.RecipientPhone,
		AddressLine1:   r.AddressLine1,
		AddressLine2:   r.AddressLine2,
		City:           r.City,
		State:          r.State,
		Pincode:        r.Pincode,
		Country:        r.Country,
		IsDefault:      r.IsDefault,
	}
}

// ListAddresses returns the user's address book.
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}

	addresses, err := h.UserService.ListAddresses(userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress adds an address to the book.
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.UserService.CreateAddress(userID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// UpdateAddress edits an owned address.
func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	addressID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.UserService.UpdateAddress(userID, addressID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// DeleteAddress removes an owned address.
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	addressID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.UserService.DeleteAddress(userID, addressID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
