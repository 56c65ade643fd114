package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/repository"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod,omitempty"`
	ChangeFreq string   `xml:"changefreq,omitempty"`
	Priority   string   `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapService renders the storefront sitemap from static routes
// plus the live product and blog slugs.
type SitemapService struct {
	cfg         config.SitemapConfig
	productRepo repository.ProductRepository
	postRepo    repository.PostRepository
	now         func() time.Time
}

// NewSitemapService creates the sitemap service.
func NewSitemapService(cfg config.SitemapConfig, productRepo repository.ProductRepository, postRepo repository.PostRepository) *SitemapService {
	return &SitemapService{
		cfg:         cfg,
		productRepo: productRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// Generate renders the sitemap XML document.
func (s *SitemapService) Generate() ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("sitemap base url is empty")
	}
	lastMod := s.now().Format("2006-01-02")

	urls := make([]sitemapURL, 0, len(s.cfg.StaticPaths))
	for _, path := range s.cfg.StaticPaths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		urls = append(urls, sitemapURL{
			Loc:        base + path,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	active := true
	products, _, err := s.productRepo.List(repository.ProductListFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/products/%s", base, product.Slug),
			LastMod:    product.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "daily",
			Priority:   "0.9",
		})
	}

	slugs, err := s.postRepo.ListPublishedSlugs(constants.PostTypeBlog)
	if err != nil {
		return nil, err
	}
	for _, slug := range slugs {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/%s", base, slug),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(sitemapURLSet{XMLNS: sitemapNamespace, URLs: urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
