package public

import (
	"net/http"
	"strings"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetBanners lists the active banners for a storefront position.
func (h *Handler) GetBanners(c *gin.Context) {
	position := strings.TrimSpace(c.Query("position"))
	banners, err := h.BannerService.ListActive(position)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, banners)
}

// GetPosts lists published posts, blog entries by default.
func (h *Handler) GetPosts(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	postType := strings.ToLower(strings.TrimSpace(c.DefaultQuery("type", constants.PostTypeBlog)))
	posts, total, err := h.PostService.ListPublic(postType, page, pageSize)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, shared.BuildPagination(page, pageSize, total))
}

// GetPostBySlug returns one published post or page.
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.PostService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// GetSitemap serves the generated sitemap XML.
func (h *Handler) GetSitemap(c *gin.Context) {
	data, err := h.SitemapService.Generate()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}
