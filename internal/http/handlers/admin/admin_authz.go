package admin

import (
	"errors"
	"net/url"
	"strings"

	"github.com/kitshop/internal/authz"
	"github.com/kitshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

type createRolePayload struct {
	Name     string   `json:"name" binding:"required"`
	Inherits []string `json:"inherits"`
}

type grantPayload struct {
	Role   string `json:"role" binding:"required"`
	Route  string `json:"route" binding:"required"`
	Method string `json:"method" binding:"required"`
}

var authzErrorRules = []struct {
	target error
	code   int
	key    string
}{
	{authz.ErrInvalidRole, response.CodeBadRequest, "error.role_invalid"},
	{authz.ErrRoleExists, response.CodeConflict, "error.role_exists"},
	{authz.ErrRoleNotFound, response.CodeNotFound, "error.role_not_found"},
	{authz.ErrInvalidGrant, response.CodeBadRequest, "error.grant_invalid"},
	{authz.ErrGrantNotFound, response.CodeNotFound, "error.grant_not_found"},
	{authz.ErrBuiltinGrant, response.CodeBadRequest, "error.role_builtin"},
}

func respondAuthzError(c *gin.Context, err error) {
	for _, rule := range authzErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.internal", err)
}

// ListRoles 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.Authorizer.Roles()
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, roles)
}

// CreateRole 新建角色
func (h *Handler) CreateRole(c *gin.Context) {
	var req createRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.Authorizer.CreateRole(req.Name, req.Inherits)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("admin_role_created",
		"operator_user_id", currentUserID(c),
		"role", role.Name,
		"inherits", role.Inherits,
	)
	response.Created(c, role)
}

// ListRoleGrants 角色的直接授权
func (h *Handler) ListRoleGrants(c *gin.Context) {
	grants, err := h.Authorizer.Grants(roleParam(c))
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, grants)
}

// GrantAccess 授予路由访问
func (h *Handler) GrantAccess(c *gin.Context) {
	grant, ok := bindGrant(c)
	if !ok {
		return
	}
	if err := h.Authorizer.GrantAccess(grant); err != nil {
		respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("admin_grant_added",
		"operator_user_id", currentUserID(c),
		"role", grant.Role,
		"route", grant.Route,
		"method", grant.Method,
	)
	response.Success(c, nil)
}

// RevokeAccess 撤销路由访问
func (h *Handler) RevokeAccess(c *gin.Context) {
	grant, ok := bindGrant(c)
	if !ok {
		return
	}
	if err := h.Authorizer.RevokeAccess(grant); err != nil {
		respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("admin_grant_revoked",
		"operator_user_id", currentUserID(c),
		"role", grant.Role,
		"route", grant.Route,
		"method", grant.Method,
	)
	response.Success(c, nil)
}

func bindGrant(c *gin.Context) (authz.Grant, bool) {
	var req grantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return authz.Grant{}, false
	}
	return authz.Grant{Role: req.Role, Route: req.Route, Method: req.Method}, true
}

func roleParam(c *gin.Context) string {
	raw := c.Param("role")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}
