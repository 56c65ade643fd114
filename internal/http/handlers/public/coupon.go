package public

import (
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponPreviewRequest asks what a code would be worth against a cart
// total before checkout.
type CouponPreviewRequest struct {
	Code   string `json:"code" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// PreviewCoupon evaluates a coupon code against a cart total.
func (h *Handler) PreviewCoupon(c *gin.Context) {
	var req CouponPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		shared.RespondError(c, response.CodeBadRequest, "invalid amount", err)
		return
	}

	// Signed-in shoppers see hidden codes, the same visibility checkout
	// grants them.
	_, includeHidden := c.Get(shared.ContextKeyUserID)
	discount, coupon, err := h.CouponService.ApplyCoupon(req.Code, models.NewMoneyFromDecimal(amount), includeHidden)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	total := amount.Sub(discount.Decimal)
	if total.IsNegative() {
		total = decimal.Zero
	}
	response.Success(c, gin.H{
		"code":     coupon.Code,
		"type":     coupon.Type,
		"discount": discount,
		"total":    models.NewMoneyFromDecimal(total),
	})
}
