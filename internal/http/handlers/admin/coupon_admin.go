package admin

import (
	"strings"
	"time"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest is the coupon editor payload.
type CouponRequest struct {
	Code           string     `json:"code" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	Value          string     `json:"value" binding:"required"`
	MinOrderAmount string     `json:"min_order_amount"`
	MaxDiscount    string     `json:"max_discount"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at"`
	Visibility     string     `json:"visibility"`
	IsActive       *bool      `json:"is_active"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	input := service.CouponInput{
		Code:       r.Code,
		Type:       r.Type,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		Visibility: r.Visibility,
		IsActive:   r.IsActive,
	}

	fields := []struct {
		raw  string
		dest *decimal.Decimal
	}{
		{r.Value, &input.Value},
		{r.MinOrderAmount, &input.MinOrderAmount},
		{r.MaxDiscount, &input.MaxDiscount},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.raw) == "" {
			continue
		}
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return input, err
		}
		*field.dest = value
	}
	return input, nil
}

// GetCoupons lists coupons for the back office.
func (h *Handler) GetCoupons(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	filter := repository.CouponListFilter{
		Code:       strings.TrimSpace(c.Query("code")),
		Type:       strings.TrimSpace(c.Query("type")),
		Visibility: strings.TrimSpace(c.Query("visibility")),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, coupons, shared.BuildPagination(page, pageSize, total))
}

// GetCoupon returns one coupon.
func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	coupon, err := h.CouponAdminService.GetByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, coupon)
}

// CreateCoupon adds a coupon.
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid decimal value", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon edits a coupon.
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid decimal value", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(id, input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon removes a coupon.
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.CouponAdminService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
