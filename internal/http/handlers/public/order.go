package public

import (
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	AddressID   uint                     `json:"address_id" binding:"required"`
	PaymentMode string                   `json:"payment_mode"`
	CouponCode  string                   `json:"coupon_code"`
	Items       []CreateOrderItemRequest `json:"items" binding:"required"`
}

// CreateOrderItemRequest is one checkout line.
type CreateOrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrder places an order from the signed-in user's cart.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:      userID,
		AddressID:   req.AddressID,
		PaymentMode: req.PaymentMode,
		CouponCode:  req.CouponCode,
		Items:       items,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrders lists the signed-in user's orders.
func (h *Handler) GetOrders(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	page, pageSize := shared.QueryPagination(c)

	orders, total, err := h.OrderService.ListUserOrders(userID, page, pageSize)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, shared.BuildPagination(page, pageSize, total))
}

// GetOrder returns one of the user's orders with items.
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	orderID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderByUser(orderID, userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder cancels an order that has not shipped yet.
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	orderID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.CancelOrder(orderID, userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
