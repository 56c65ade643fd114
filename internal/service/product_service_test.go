package service

import (
	"errors"
	"testing"

	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCatalogTest(t *testing.T) (*ProductService, *CategoryService, uint) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	categorySvc := NewCategoryService(repository.NewCategoryRepository(db))
	category, err := categorySvc.Create(CategoryInput{Slug: "rings", Name: "Rings"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db)), categorySvc, category.ID
}

func ringInput(categoryID uint, slug, sku string) ProductInput {
	return ProductInput{
		CategoryID:    categoryID,
		Slug:          slug,
		SKUCode:       sku,
		Title:         "Gold Ring",
		PriceAmount:   decimal.NewFromInt(24999),
		MetalType:     "Gold",
		Purity:        "22K",
		GrossWeight:   decimal.RequireFromString("4.250"),
		NetWeight:     decimal.RequireFromString("4.100"),
		StockQuantity: 3,
	}
}

func TestProductCreateRejectsDuplicateSlugAndSKU(t *testing.T) {
	svc, _, categoryID := setupCatalogTest(t)

	first, err := svc.Create(ringInput(categoryID, "gold-ring", "RNG-001"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.MetalType != "gold" {
		t.Fatalf("expected normalized metal type, got %q", first.MetalType)
	}

	if _, err := svc.Create(ringInput(categoryID, "gold-ring", "RNG-002")); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	if _, err := svc.Create(ringInput(categoryID, "gold-ring-2", "RNG-001")); !errors.Is(err, ErrSKUTaken) {
		t.Fatalf("expected ErrSKUTaken, got %v", err)
	}

	// updating a product to its own slug is not a conflict
	if _, err := svc.Update(first.ID, ringInput(categoryID, "gold-ring", "RNG-001")); err != nil {
		t.Fatalf("self update: %v", err)
	}
}

func TestProductCreateRejectsNonPositivePrice(t *testing.T) {
	svc, _, categoryID := setupCatalogTest(t)

	input := ringInput(categoryID, "gold-ring", "RNG-001")
	input.PriceAmount = decimal.Zero
	if _, err := svc.Create(input); !errors.Is(err, ErrPriceInvalid) {
		t.Fatalf("expected ErrPriceInvalid, got %v", err)
	}
}

func TestPublicProductLookupHidesInactive(t *testing.T) {
	svc, _, categoryID := setupCatalogTest(t)

	inactive := false
	input := ringInput(categoryID, "gold-ring", "RNG-001")
	input.IsActive = &inactive
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetPublicBySlug("gold-ring"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	products, total, err := svc.ListPublic(repository.ProductListFilter{Page: 1, PageSize: 10})
	if err != nil || total != 0 || len(products) != 0 {
		t.Fatalf("expected empty public list, got %d/%d (%v)", len(products), total, err)
	}
}

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	productSvc, categorySvc, categoryID := setupCatalogTest(t)

	if _, err := productSvc.Create(ringInput(categoryID, "gold-ring", "RNG-001")); err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := categorySvc.Delete(categoryID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}
