package shared

import (
	"strconv"

	"github.com/ratna-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyAdminID  = "admin_id"
	ContextKeyUsername = "username"
)

// GetContextUint reads a uint from the request context, responding
// with unauthorized when it is missing.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid identity type", nil)
		return 0, false
	}
}

// ParamUint reads a positive uint path parameter, responding with bad
// request on garbage.
func ParamUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, "invalid "+name, err)
		return 0, false
	}
	return uint(value), true
}
