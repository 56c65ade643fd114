package service

import (
	"strings"

	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"
)

// BannerService handles storefront promo banners.
type BannerService struct {
	repo repository.BannerRepository
}

// NewBannerService creates the banner service.
func NewBannerService(repo repository.BannerRepository) *BannerService {
	return &BannerService{repo: repo}
}

// BannerInput is the create/update payload for a banner.
type BannerInput struct {
	Title     string
	ImageURL  string
	LinkURL   string
	Position  string
	SortOrder int
	IsActive  *bool
}

// ListActive returns live banners for one storefront slot.
func (s *BannerService) ListActive(position string) ([]models.Banner, error) {
	return s.repo.ListActive(strings.TrimSpace(position))
}

// ListAdmin returns the back-office banner list.
func (s *BannerService) ListAdmin(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	return s.repo.List(filter)
}

// Create inserts a banner.
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, ErrBannerInvalid
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	banner := models.Banner{
		Title:     strings.TrimSpace(input.Title),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		LinkURL:   strings.TrimSpace(input.LinkURL),
		Position:  strings.TrimSpace(input.Position),
		SortOrder: input.SortOrder,
		IsActive:  isActive,
	}
	if banner.Position == "" {
		banner.Position = "home_hero"
	}
	if err := s.repo.Create(&banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// Update rewrites a banner.
func (s *BannerService) Update(id uint, input BannerInput) (*models.Banner, error) {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}

	banner.Title = strings.TrimSpace(input.Title)
	banner.ImageURL = strings.TrimSpace(input.ImageURL)
	banner.LinkURL = strings.TrimSpace(input.LinkURL)
	if position := strings.TrimSpace(input.Position); position != "" {
		banner.Position = position
	}
	banner.SortOrder = input.SortOrder
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if err := s.repo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete removes a banner.
func (s *BannerService) Delete(id uint) error {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrBannerNotFound
	}
	return s.repo.Delete(id)
}
