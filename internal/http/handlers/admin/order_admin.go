package admin

import (
	"strings"
	"time"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetOrders lists orders for the back office.
func (h *Handler) GetOrders(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	filter := repository.OrderListFilter{
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		Status:      strings.TrimSpace(c.Query("status")),
		PaymentMode: strings.TrimSpace(c.Query("payment_mode")),
		Page:        page,
		PageSize:    pageSize,
	}
	if raw := c.Query("created_from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedTo = &t
		}
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, shared.BuildPagination(page, pageSize, total))
}

// GetOrder returns one order with items and payments.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetAdminByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	payments, err := h.PaymentService.ListByOrder(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order":    order,
		"payments": payments,
	})
}

// UpdateOrderStatusRequest is the status transition payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order along its lifecycle.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CreateShipment hands a paid order to the courier.
func (h *Handler) CreateShipment(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	order, err := h.ShippingService.CreateShipment(c.Request.Context(), id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// TrackShipment fetches the courier tracking state for an order.
func (h *Handler) TrackShipment(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	result, err := h.ShippingService.Track(c.Request.Context(), id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// GetShipmentLabel fetches the courier label URL for an order.
func (h *Handler) GetShipmentLabel(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	result, err := h.ShippingService.Label(c.Request.Context(), id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}
