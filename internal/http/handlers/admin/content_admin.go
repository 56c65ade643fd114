package admin

import (
	"strings"

	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// PostRequest is the post editor payload.
type PostRequest struct {
	Slug        string                 `json:"slug" binding:"required"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title" binding:"required"`
	Body        string                 `json:"body"`
	CoverImage  string                 `json:"cover_image"`
	SeoMetaJSON map[string]interface{} `json:"seo_meta"`
	IsPublished *bool                  `json:"is_published"`
}

func (r PostRequest) toInput() service.PostInput {
	return service.PostInput{
		Slug:        r.Slug,
		Type:        r.Type,
		Title:       r.Title,
		Body:        r.Body,
		CoverImage:  r.CoverImage,
		SeoMetaJSON: r.SeoMetaJSON,
		IsPublished: r.IsPublished,
	}
}

// GetPosts lists posts for the back office.
func (h *Handler) GetPosts(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	filter := repository.PostListFilter{
		Type:     strings.TrimSpace(c.Query("type")),
		Keyword:  strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_published"); raw != "" {
		published := raw == "true"
		filter.IsPublished = &published
	}

	posts, total, err := h.PostService.ListAdmin(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, shared.BuildPagination(page, pageSize, total))
}

// GetPost returns one post for editing.
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	post, err := h.PostService.GetAdminByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost adds a post or page.
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	post, err := h.PostService.Create(req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost edits a post.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	post, err := h.PostService.Update(id, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost removes a post.
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.PostService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// BannerRequest is the banner editor payload.
type BannerRequest struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url" binding:"required"`
	LinkURL   string `json:"link_url"`
	Position  string `json:"position"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

func (r BannerRequest) toInput() service.BannerInput {
	return service.BannerInput{
		Title:     r.Title,
		ImageURL:  r.ImageURL,
		LinkURL:   r.LinkURL,
		Position:  r.Position,
		SortOrder: r.SortOrder,
		IsActive:  r.IsActive,
	}
}

// GetBanners lists banners for the back office.
func (h *Handler) GetBanners(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	filter := repository.BannerListFilter{
		Position: strings.TrimSpace(c.Query("position")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	banners, total, err := h.BannerService.ListAdmin(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, banners, shared.BuildPagination(page, pageSize, total))
}

// CreateBanner adds a banner.
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	banner, err := h.BannerService.Create(req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// UpdateBanner edits a banner.
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	banner, err := h.BannerService.Update(id, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// DeleteBanner removes a banner.
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.BannerService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetSettings lists every setting row.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingService.ListAll()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettingRequest is the setting value payload.
type UpdateSettingRequest struct {
	Value map[string]interface{} `json:"value" binding:"required"`
}

// UpdateSetting upserts one setting key.
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	value, err := h.SettingService.Update(key, req.Value)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"key":   key,
		"value": value,
	})
}
