package repository

import (
	"testing"

	"github.com/ratna-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, slug string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:    1,
		Slug:          slug,
		SKUCode:       "SKU-" + slug,
		Title:         "Gold Ring",
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(25000)),
		MetalType:     "gold",
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestStockDecrementRefusesOversell(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "stock-lifecycle", 5)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement over available failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over available affected want 0 got %d", affected)
	}

	if err := repo.IncrementStock(product.ID, 1); err != nil {
		t.Fatalf("increment stock failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.StockQuantity != 3 {
		t.Fatalf("stock want 3 got %d", got.StockQuantity)
	}
}

func TestProductListFiltersAndSort(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	cheap := createTestProduct(t, repo, "silver-anklet", 10)
	cheap.MetalType = "silver"
	cheap.PriceAmount = models.NewMoneyFromDecimal(decimal.NewFromInt(3000))
	if err := repo.Update(cheap); err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	createTestProduct(t, repo, "gold-ring", 10)

	products, total, err := repo.List(ProductListFilter{MetalType: "silver", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by metal failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Slug != "silver-anklet" {
		t.Fatalf("metal filter want silver-anklet got total=%d len=%d", total, len(products))
	}

	products, _, err = repo.List(ProductListFilter{Sort: "price_asc", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by price failed: %v", err)
	}
	if len(products) != 2 || products[0].Slug != "silver-anklet" {
		t.Fatalf("price sort want silver-anklet first got %+v", products)
	}
}
