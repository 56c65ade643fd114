package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a CMS content page or blog entry rendered by the storefront.
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Type        string         `gorm:"index;not null;default:'page'" json:"type"` // page / blog
	Title       string         `gorm:"not null" json:"title"`
	Body        string         `gorm:"type:text" json:"body"`
	CoverImage  string         `json:"cover_image"`
	SeoMetaJSON JSON           `gorm:"type:text" json:"seo_meta"`
	IsPublished bool           `gorm:"index;not null;default:false" json:"is_published"`
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Post) TableName() string {
	return "posts"
}
