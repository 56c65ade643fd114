package service

import (
	"strings"

	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService handles catalog products.
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates the product service.
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	CategoryID    uint
	Slug          string
	SKUCode       string
	Title         string
	Description   string
	SeoMetaJSON   map[string]interface{}
	PriceAmount   decimal.Decimal
	MakingCharge  decimal.Decimal
	MetalType     string
	Purity        string
	GrossWeight   decimal.Decimal
	NetWeight     decimal.Decimal
	StoneType     string
	StoneWeight   decimal.Decimal
	StoneCharge   decimal.Decimal
	Images        []string
	Tags          []string
	StockQuantity int
	IsActive      *bool
	SortOrder     int
}

// ListPublic returns active products for the storefront.
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	active := true
	filter.IsActive = &active
	return s.repo.List(filter)
}

// GetPublicBySlug returns an active product by its slug.
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin returns the back-office product list.
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetAdminByID returns a product for the back office.
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create inserts a product after slug and SKU uniqueness checks.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	sku := strings.TrimSpace(input.SKUCode)
	priceAmount := input.PriceAmount.Round(2)
	if slug == "" || sku == "" || strings.TrimSpace(input.Title) == "" {
		return nil, ErrProductNotFound
	}
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrPriceInvalid
	}
	if err := s.checkSlugFree(slug, 0); err != nil {
		return nil, err
	}
	if err := s.checkSKUFree(sku, 0); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := models.Product{
		CategoryID:    input.CategoryID,
		Slug:          slug,
		SKUCode:       sku,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		SeoMetaJSON:   models.JSON(input.SeoMetaJSON),
		PriceAmount:   models.NewMoneyFromDecimal(priceAmount),
		MakingCharge:  models.NewMoneyFromDecimal(input.MakingCharge.Round(2)),
		MetalType:     normalizeMetalType(input.MetalType),
		Purity:        strings.TrimSpace(input.Purity),
		GrossWeight:   models.NewGramsFromDecimal(input.GrossWeight),
		NetWeight:     models.NewGramsFromDecimal(input.NetWeight),
		StoneType:     strings.TrimSpace(input.StoneType),
		StoneWeight:   models.NewGramsFromDecimal(input.StoneWeight),
		StoneCharge:   models.NewMoneyFromDecimal(input.StoneCharge.Round(2)),
		Images:        models.StringArray(input.Images),
		Tags:          models.StringArray(input.Tags),
		StockQuantity: input.StockQuantity,
		IsActive:      isActive,
		SortOrder:     input.SortOrder,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update rewrites a product after slug and SKU uniqueness checks.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	sku := strings.TrimSpace(input.SKUCode)
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrPriceInvalid
	}
	if err := s.checkSlugFree(slug, id); err != nil {
		return nil, err
	}
	if err := s.checkSKUFree(sku, id); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Slug = slug
	product.SKUCode = sku
	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.SeoMetaJSON = models.JSON(input.SeoMetaJSON)
	product.PriceAmount = models.NewMoneyFromDecimal(priceAmount)
	product.MakingCharge = models.NewMoneyFromDecimal(input.MakingCharge.Round(2))
	product.MetalType = normalizeMetalType(input.MetalType)
	product.Purity = strings.TrimSpace(input.Purity)
	product.GrossWeight = models.NewGramsFromDecimal(input.GrossWeight)
	product.NetWeight = models.NewGramsFromDecimal(input.NetWeight)
	product.StoneType = strings.TrimSpace(input.StoneType)
	product.StoneWeight = models.NewGramsFromDecimal(input.StoneWeight)
	product.StoneCharge = models.NewMoneyFromDecimal(input.StoneCharge.Round(2))
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.StockQuantity = input.StockQuantity
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes a product.
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}

func (s *ProductService) checkSlugFree(slug string, selfID uint) error {
	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrSlugTaken
	}
	return nil
}

func (s *ProductService) checkSKUFree(sku string, selfID uint) error {
	existing, err := s.repo.GetBySKU(sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrSKUTaken
	}
	return nil
}

func normalizeMetalType(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
