package repository

import (
	"errors"

	"github.com/ratna-shop/internal/models"

	"gorm.io/gorm"
)

// PostRepository is the CMS content data access interface.
type PostRepository interface {
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
	List(filter PostListFilter) ([]models.Post, int64, error)
	ListPublishedSlugs(postType string) ([]string, error)
	WithTx(tx *gorm.DB) *GormPostRepository
}

// PostListFilter filters the post list.
type PostListFilter struct {
	Type        string
	Keyword     string
	IsPublished *bool
	Page        int
	PageSize    int
}

// GormPostRepository is the GORM implementation.
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a post repository.
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormPostRepository) WithTx(tx *gorm.DB) *GormPostRepository {
	if tx == nil {
		return r
	}
	return &GormPostRepository{db: tx}
}

// GetByID fetches a post by ID.
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by slug.
func (r *GormPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a post.
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update saves a post.
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete soft-deletes a post.
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// List returns a filtered post page.
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	var posts []models.Post
	query := r.db.Model(&models.Post{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPublishedSlugs returns the slugs of published posts, for sitemaps.
func (r *GormPostRepository) ListPublishedSlugs(postType string) ([]string, error) {
	var slugs []string
	query := r.db.Model(&models.Post{}).Where("is_published = ?", true)
	if postType != "" {
		query = query.Where("type = ?", postType)
	}
	if err := query.Order("id asc").Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}
