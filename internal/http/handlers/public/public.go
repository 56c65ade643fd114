package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/ratna-shop/internal/cache"
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig returns the storefront bootstrap configuration.
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	settings, err := h.SettingService.GetPublicConfig()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	data := map[string]interface{}{
		"currency": h.SettingService.SiteCurrency(),
		"captcha": gin.H{
			"enabled": h.CaptchaService.Enabled(),
		},
		"payment": gin.H{
			"provider": "razorpay",
			"key_id":   h.Config.Razorpay.KeyID,
		},
	}
	for key, value := range settings {
		data[key] = value
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetCategories lists the storefront categories.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// GetProducts lists active products with catalog filters.
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	filter := repository.ProductListFilter{
		Keyword:   strings.TrimSpace(c.Query("search")),
		MetalType: strings.ToLower(strings.TrimSpace(c.Query("metal_type"))),
		Sort:      strings.TrimSpace(c.Query("sort")),
		Page:      page,
		PageSize:  pageSize,
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	products, total, err := h.ProductService.ListPublic(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, shared.BuildPagination(page, pageSize, total))
}

// GetProductBySlug returns one active product.
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}
