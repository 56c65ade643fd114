package public

import (
	"io"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
)

const razorpaySignatureHeader = "X-Razorpay-Signature"

// InitiatePayment registers a gateway order for a pending order and
// returns the checkout intent.
func (h *Handler) InitiatePayment(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	orderID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	intent, err := h.PaymentService.InitiatePayment(c.Request.Context(), orderID, userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, intent)
}

// CapturePaymentRequest is the checkout callback payload posted by the
// storefront after the gateway widget completes.
type CapturePaymentRequest struct {
	ProviderOrderID   string `json:"razorpay_order_id" binding:"required"`
	ProviderPaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature         string `json:"razorpay_signature" binding:"required"`
}

// CapturePayment verifies the gateway signature and settles the order.
func (h *Handler) CapturePayment(c *gin.Context) {
	var req CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	payment, err := h.PaymentService.CapturePayment(c.Request.Context(), service.CapturePaymentInput{
		ProviderOrderID:   req.ProviderOrderID,
		ProviderPaymentID: req.ProviderPaymentID,
		Signature:         req.Signature,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// PaymentWebhook handles asynchronous gateway notifications. The raw
// body is needed for signature verification.
func (h *Handler) PaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	signature := c.GetHeader(razorpaySignatureHeader)
	if err := h.PaymentService.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"handled": true})
}

// GetOrderPayments lists the payment attempts for one of the user's
// orders.
func (h *Handler) GetOrderPayments(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, shared.ContextKeyUserID)
	if !ok {
		return
	}
	orderID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if _, err := h.OrderService.GetOrderByUser(orderID, userID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	payments, err := h.PaymentService.ListByOrder(orderID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, payments)
}
