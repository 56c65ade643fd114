package main

import (
	"time"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "Rings", Slug: "rings", SortOrder: 10},
		{Name: "Necklaces", Slug: "necklaces", SortOrder: 20},
		{Name: "Earrings", Slug: "earrings", SortOrder: 30},
		{Name: "Bangles", Slug: "bangles", SortOrder: 40},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"rings", "necklaces", "earrings", "bangles"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []models.Product{
		{
			CategoryID:    categoryIDs["rings"],
			Slug:          "classic-gold-band-22k",
			SKUCode:       "RNG-22K-001",
			Title:         "Classic Gold Band",
			Description:   "A plain 22K gold band with a mirror polish finish.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(24850.00)),
			MakingCharge:  models.NewMoneyFromDecimal(decimal.NewFromFloat(1200.00)),
			MetalType:     constants.MetalTypeGold,
			Purity:        "22K",
			GrossWeight:   models.NewGramsFromDecimal(decimal.NewFromFloat(3.420)),
			NetWeight:     models.NewGramsFromDecimal(decimal.NewFromFloat(3.420)),
			Images:        models.StringArray([]string{"/uploads/products/classic-gold-band.jpg"}),
			Tags:          models.StringArray([]string{"gold", "band", "daily-wear"}),
			StockQuantity: 12,
			IsActive:      true,
			SortOrder:     10,
		},
		{
			CategoryID:    categoryIDs["necklaces"],
			Slug:          "temple-pendant-necklace",
			SKUCode:       "NCK-22K-004",
			Title:         "Temple Pendant Necklace",
			Description:   "Handcrafted temple motif pendant on a rope chain.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(86400.00)),
			MakingCharge:  models.NewMoneyFromDecimal(decimal.NewFromFloat(6800.00)),
			MetalType:     constants.MetalTypeGold,
			Purity:        "22K",
			GrossWeight:   models.NewGramsFromDecimal(decimal.NewFromFloat(12.880)),
			NetWeight:     models.NewGramsFromDecimal(decimal.NewFromFloat(12.150)),
			StoneType:     "ruby",
			StoneWeight:   models.NewGramsFromDecimal(decimal.NewFromFloat(0.730)),
			StoneCharge:   models.NewMoneyFromDecimal(decimal.NewFromFloat(4500.00)),
			Images:        models.StringArray([]string{"/uploads/products/temple-pendant.jpg"}),
			Tags:          models.StringArray([]string{"gold", "temple", "bridal"}),
			StockQuantity: 3,
			IsActive:      true,
			SortOrder:     20,
		},
		{
			CategoryID:    categoryIDs["earrings"],
			Slug:          "silver-jhumka-925",
			SKUCode:       "EAR-925-009",
			Title:         "Oxidised Silver Jhumka",
			Description:   "925 sterling silver jhumkas with an oxidised finish.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(2350.00)),
			MakingCharge:  models.NewMoneyFromDecimal(decimal.NewFromFloat(350.00)),
			MetalType:     constants.MetalTypeSilver,
			Purity:        "925",
			GrossWeight:   models.NewGramsFromDecimal(decimal.NewFromFloat(8.200)),
			NetWeight:     models.NewGramsFromDecimal(decimal.NewFromFloat(8.200)),
			Images:        models.StringArray([]string{"/uploads/products/silver-jhumka.jpg"}),
			Tags:          models.StringArray([]string{"silver", "jhumka", "festive"}),
			StockQuantity: 25,
			IsActive:      true,
			SortOrder:     30,
		},
		{
			CategoryID:    categoryIDs["bangles"],
			Slug:          "diamond-kada-18k",
			SKUCode:       "BNG-18K-002",
			Title:         "Diamond Kada",
			Description:   "18K gold kada set with round brilliant diamonds.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(148000.00)),
			MakingCharge:  models.NewMoneyFromDecimal(decimal.NewFromFloat(11000.00)),
			MetalType:     constants.MetalTypeGold,
			Purity:        "18K",
			GrossWeight:   models.NewGramsFromDecimal(decimal.NewFromFloat(18.450)),
			NetWeight:     models.NewGramsFromDecimal(decimal.NewFromFloat(17.900)),
			StoneType:     "diamond",
			StoneWeight:   models.NewGramsFromDecimal(decimal.NewFromFloat(0.550)),
			StoneCharge:   models.NewMoneyFromDecimal(decimal.NewFromFloat(42000.00)),
			Images:        models.StringArray([]string{"/uploads/products/diamond-kada.jpg"}),
			Tags:          models.StringArray([]string{"diamond", "kada", "bridal"}),
			StockQuantity: 2,
			IsActive:      true,
			SortOrder:     40,
		},
	}

	for _, product := range products {
		if product.CategoryID == 0 {
			stdLog.Printf("Skipping product %s: category missing", product.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	now := time.Now()
	coupons := []models.Coupon{
		{
			Code:           "WELCOME10",
			Type:           constants.CouponTypePercent,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			MaxDiscount:    models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
			StartsAt:       &now,
			Visibility:     constants.CouponVisibilityPublic,
			IsActive:       true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	settings := map[string]models.JSON{
		constants.SettingKeySite: models.JSON(map[string]interface{}{
			"site_name":        "Ratna Shop",
			"site_description": "Handcrafted gold, silver and diamond jewellery.",
			"site_currency":    constants.SiteCurrencyDefault,
		}),
		constants.SettingKeyContact: models.JSON(map[string]interface{}{
			"support_email": "support@ratna.example",
			"support_phone": "+911234567890",
		}),
		constants.SettingKeyShipping: models.JSON(map[string]interface{}{
			"flat_rate":            "99",
			"free_above":           "25000",
			"default_pickup_city":  "Jaipur",
			"default_pickup_state": "Rajasthan",
		}),
	}
	for key, value := range settings {
		var existing models.Setting
		if err := models.DB.Where("key = ?", key).First(&existing).Error; err != nil {
			if err := models.DB.Create(&models.Setting{Key: key, ValueJSON: value}).Error; err != nil {
				stdLog.Printf("Failed to create setting %s: %v", key, err)
			} else {
				stdLog.Printf("Created setting: %s", key)
			}
		} else {
			stdLog.Printf("Setting already exists: %s", key)
		}
	}

	stdLog.Println("Seed finished")
}
