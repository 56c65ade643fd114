package service

import (
	"strings"
	"testing"
	"time"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSitemapGenerate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Post{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	products := []models.Product{
		{CategoryID: 1, Slug: "gold-ring", SKUCode: "RNG-001", Title: "Gold Ring", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)), IsActive: true},
		{CategoryID: 1, Slug: "retired-ring", SKUCode: "RNG-002", Title: "Retired Ring", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)), IsActive: false},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("create products: %v", err)
	}
	now := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{Slug: "care-guide", Type: constants.PostTypeBlog, Title: "Care Guide", IsPublished: true, PublishedAt: &now},
		{Slug: "draft-post", Type: constants.PostTypeBlog, Title: "Draft", IsPublished: false},
		{Slug: "about-us", Type: constants.PostTypePage, Title: "About", IsPublished: true, PublishedAt: &now},
	}
	if err := db.Create(&posts).Error; err != nil {
		t.Fatalf("create posts: %v", err)
	}

	svc := NewSitemapService(config.SitemapConfig{
		BaseURL:     "https://shop.example.com/",
		StaticPaths: []string{"/", "/products", "blog"},
	}, repository.NewProductRepository(db), repository.NewPostRepository(db))
	svc.now = func() time.Time { return now }

	out, err := svc.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	doc := string(out)

	if !strings.HasPrefix(doc, "<?xml") {
		t.Fatalf("missing xml header: %q", doc[:50])
	}
	if !strings.Contains(doc, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`) {
		t.Fatal("missing sitemap namespace")
	}
	for _, loc := range []string{
		"<loc>https://shop.example.com/</loc>",
		"<loc>https://shop.example.com/products</loc>",
		"<loc>https://shop.example.com/blog</loc>",
		"<loc>https://shop.example.com/products/gold-ring</loc>",
		"<loc>https://shop.example.com/blog/care-guide</loc>",
	} {
		if !strings.Contains(doc, loc) {
			t.Fatalf("missing %s in:\n%s", loc, doc)
		}
	}
	for _, absent := range []string{"retired-ring", "draft-post", "about-us"} {
		if strings.Contains(doc, absent) {
			t.Fatalf("unexpected %s in sitemap", absent)
		}
	}
}
