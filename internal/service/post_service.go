package service

import (
	"strings"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"
)

// PostService handles blog entries and CMS pages.
type PostService struct {
	repo repository.PostRepository
}

// NewPostService creates the post service.
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// PostInput is the create/update payload for a post.
type PostInput struct {
	Slug        string
	Type        string
	Title       string
	Body        string
	CoverImage  string
	SeoMetaJSON map[string]interface{}
	IsPublished *bool
}

// ListPublic returns published posts for the storefront.
func (s *PostService) ListPublic(postType string, page, pageSize int) ([]models.Post, int64, error) {
	published := true
	return s.repo.List(repository.PostListFilter{
		Type:        strings.ToLower(strings.TrimSpace(postType)),
		IsPublished: &published,
		Page:        page,
		PageSize:    pageSize,
	})
}

// GetPublicBySlug returns a published post by its slug.
func (s *PostService) GetPublicBySlug(slug string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListAdmin returns the back-office post list.
func (s *PostService) ListAdmin(filter repository.PostListFilter) ([]models.Post, int64, error) {
	return s.repo.List(filter)
}

// GetAdminByID returns a post for the back office.
func (s *PostService) GetAdminByID(id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create inserts a post after a slug uniqueness check.
func (s *PostService) Create(input PostInput) (*models.Post, error) {
	slug := strings.TrimSpace(input.Slug)
	postType, err := normalizePostType(input.Type)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	post := models.Post{
		Slug:        slug,
		Type:        postType,
		Title:       strings.TrimSpace(input.Title),
		Body:        input.Body,
		CoverImage:  input.CoverImage,
		SeoMetaJSON: models.JSON(input.SeoMetaJSON),
	}
	if input.IsPublished != nil && *input.IsPublished {
		now := time.Now()
		post.IsPublished = true
		post.PublishedAt = &now
	}
	if err := s.repo.Create(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update rewrites a post after a slug uniqueness check.
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	postType, err := normalizePostType(input.Type)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrSlugTaken
	}

	post.Slug = slug
	post.Type = postType
	post.Title = strings.TrimSpace(input.Title)
	post.Body = input.Body
	post.CoverImage = input.CoverImage
	post.SeoMetaJSON = models.JSON(input.SeoMetaJSON)
	if input.IsPublished != nil {
		if *input.IsPublished && !post.IsPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes a post.
func (s *PostService) Delete(id uint) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.repo.Delete(id)
}

func normalizePostType(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", constants.PostTypePage:
		return constants.PostTypePage, nil
	case constants.PostTypeBlog:
		return constants.PostTypeBlog, nil
	default:
		return "", ErrPostTypeInvalid
	}
}
