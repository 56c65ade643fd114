package admin

import (
	"strconv"
	"strings"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest is the catalog editor payload. Monetary and weight
// fields arrive as decimal strings.
type ProductRequest struct {
	CategoryID    uint                   `json:"category_id" binding:"required"`
	Slug          string                 `json:"slug" binding:"required"`
	SKUCode       string                 `json:"sku_code" binding:"required"`
	Title         string                 `json:"title" binding:"required"`
	Description   string                 `json:"description"`
	SeoMetaJSON   map[string]interface{} `json:"seo_meta"`
	PriceAmount   string                 `json:"price_amount" binding:"required"`
	MakingCharge  string                 `json:"making_charge"`
	MetalType     string                 `json:"metal_type"`
	Purity        string                 `json:"purity"`
	GrossWeight   string                 `json:"gross_weight"`
	NetWeight     string                 `json:"net_weight"`
	StoneType     string                 `json:"stone_type"`
	StoneWeight   string                 `json:"stone_weight"`
	StoneCharge   string                 `json:"stone_charge"`
	Images        []string               `json:"images"`
	Tags          []string               `json:"tags"`
	StockQuantity int                    `json:"stock_quantity"`
	IsActive      *bool                  `json:"is_active"`
	SortOrder     int                    `json:"sort_order"`
}

func (r ProductRequest) toInput() (service.ProductInput, error) {
	input := service.ProductInput{
		CategoryID:    r.CategoryID,
		Slug:          r.Slug,
		SKUCode:       r.SKUCode,
		Title:         r.Title,
		Description:   r.Description,
		SeoMetaJSON:   r.SeoMetaJSON,
		MetalType:     r.MetalType,
		Purity:        r.Purity,
		StoneType:     r.StoneType,
		Images:        r.Images,
		Tags:          r.Tags,
		StockQuantity: r.StockQuantity,
		IsActive:      r.IsActive,
		SortOrder:     r.SortOrder,
	}

	fields := []struct {
		raw  string
		dest *decimal.Decimal
	}{
		{r.PriceAmount, &input.PriceAmount},
		{r.MakingCharge, &input.MakingCharge},
		{r.GrossWeight, &input.GrossWeight},
		{r.NetWeight, &input.NetWeight},
		{r.StoneWeight, &input.StoneWeight},
		{r.StoneCharge, &input.StoneCharge},
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

// GetProducts lists products for the back office.
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
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, shared.BuildPagination(page, pageSize, total))
}

// GetProduct returns one product for editing.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid decimal value", err)
		return
	}

	product, err := h.ProductService.Create(input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct edits a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid decimal value", err)
		return
	}

	product, err := h.ProductService.Update(id, input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CategoryRequest is the category editor payload.
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// GetCategories lists all categories.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Create(service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory edits a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category that has no products.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
