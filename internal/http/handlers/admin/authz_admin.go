package admin

import (
	"github.com/ratna-shop/internal/authz"
	"github.com/ratna-shop/internal/http/handlers/shared"
	"github.com/ratna-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetRoles lists the back-office roles.
func (h *Handler) GetRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "list roles failed", err)
		return
	}
	response.Success(c, roles)
}

// RoleRequest names a role.
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateRole registers a role name.
func (h *Handler) CreateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid role", err)
		return
	}
	response.Success(c, gin.H{"role": role})
}

// DeleteRole removes a role and its policies.
func (h *Handler) DeleteRole(c *gin.Context) {
	role := c.Param("role")
	if err := h.AuthzService.DeleteRole(role); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "delete role failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetRolePolicies lists a role's permissions.
func (h *Handler) GetRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "list role policies failed", err)
		return
	}
	response.Success(c, policies)
}

// PolicyRequest is one object/action permission.
type PolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GrantRolePolicy adds a permission to a role.
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "grant policy failed", err)
		return
	}
	response.Success(c, gin.H{"granted": true})
}

// RevokeRolePolicy removes a permission from a role.
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "revoke policy failed", err)
		return
	}
	response.Success(c, gin.H{"revoked": true})
}

// GetAdminRoles lists an administrator's roles.
func (h *Handler) GetAdminRoles(c *gin.Context) {
	adminID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "list admin roles failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAdminRolesRequest replaces an administrator's role set.
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetAdminRoles replaces an administrator's roles.
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "set admin roles failed", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// GetBuiltinRoleSeeds returns the built-in role matrix for the role
// editor UI.
func (h *Handler) GetBuiltinRoleSeeds(c *gin.Context) {
	response.Success(c, authz.BuiltinRoleSeeds())
}
