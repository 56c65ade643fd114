package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/provider"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q failed: %v", value, err)
	}
	return d
}

func setupCouponPreviewTest(t *testing.T) *Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	hidden := models.Coupon{
		Code:       "VIP500",
		Type:       constants.CouponTypeFixed,
		Value:      models.NewMoneyFromDecimal(decimalFromString(t, "500")),
		Visibility: constants.CouponVisibilityHidden,
		IsActive:   true,
	}
	if err := db.Create(&hidden).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	couponService := service.NewCouponService(repository.NewCouponRepository(db))
	return New(&provider.Container{CouponService: couponService})
}

func previewCoupon(t *testing.T, h *Handler, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/coupons/preview", func(c *gin.Context) {
		if authenticated {
			c.Set(shared.ContextKeyUserID, uint(7))
		}
		h.PreviewCoupon(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coupons/preview", strings.NewReader(`{"code":"VIP500","amount":"2000"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestPreviewCouponHiddenVisibility(t *testing.T) {
	h := setupCouponPreviewTest(t)

	// Anonymous callers cannot see hidden codes.
	w := previewCoupon(t, h, false)
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Total models.Money `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("anonymous status_code want %d got %d", response.CodeNotFound, resp.StatusCode)
	}

	// A signed-in shopper previews the same code checkout would accept.
	w = previewCoupon(t, h, true)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("authenticated status_code want 0 got %d (%s)", resp.StatusCode, w.Body.String())
	}
	if !resp.Data.Total.Decimal.Equal(decimalFromString(t, "1500")) {
		t.Fatalf("total want 1500 got %s", resp.Data.Total.Decimal)
	}
}
