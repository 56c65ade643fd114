package admin

import "github.com/ratna-shop/internal/provider"

// Handler exposes the back-office endpoints.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
