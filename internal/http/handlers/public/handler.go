package public

import (
	"github.com/ratna-shop/internal/provider"
)

// Handler exposes the storefront endpoints.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
