package main

import (
	"os"
	"path/filepath"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/service"
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

	sitemapService := service.NewSitemapService(
		cfg.Sitemap,
		repository.NewProductRepository(models.DB),
		repository.NewPostRepository(models.DB),
	)

	data, err := sitemapService.Generate()
	if err != nil {
		stdLog.Fatalf("Failed to generate sitemap: %v", err)
	}

	outputPath := cfg.Sitemap.OutputPath
	if outputPath == "" {
		outputPath = "sitemap.xml"
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			stdLog.Fatalf("Failed to create output directory: %v", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		stdLog.Fatalf("Failed to write sitemap: %v", err)
	}
	stdLog.Printf("Sitemap written to %s (%d bytes)", outputPath, len(data))
}
