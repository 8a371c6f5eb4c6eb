package authz

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix   = "/api/v1"
	ruleTableName = "casbin_rule"
	subjectPrefix = "role:"
)

// 路由授权模型：角色可继承，路由支持 :param 与 * 通配，方法 * 表示任意
const routeModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

var (
	ErrUnavailable   = errors.New("authorizer unavailable")
	ErrInvalidRole   = errors.New("invalid role name")
	ErrRoleExists    = errors.New("role already exists")
	ErrRoleNotFound  = errors.New("role not found")
	ErrInvalidGrant  = errors.New("route and method are required")
	ErrGrantNotFound = errors.New("grant not found")
	ErrBuiltinGrant  = errors.New("builtin grant cannot be revoked")
)

var roleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{1,31}$`)

var allowedMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true, "*": true,
}

// Grant 角色对某个路由模板的访问授权
type Grant struct {
	Role   string `json:"role"`
	Route  string `json:"route"`
	Method string `json:"method"`
}

// Authorizer 基于 casbin 的路由授权，策略持久化在 casbin_rule 表
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewAuthorizer 创建授权器并加载已持久化的策略
func NewAuthorizer(db *gorm.DB) (*Authorizer, error) {
	if db == nil {
		return nil, fmt.Errorf("authz: db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", ruleTableName)
	if err != nil {
		return nil, fmt.Errorf("authz: create adapter: %w", err)
	}
	m, err := model.NewModelFromString(routeModel)
	if err != nil {
		return nil, fmt.Errorf("authz: parse model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("authz: init enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: load policy: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Allow 判断角色能否以 method 访问 route；未知或非法角色一律拒绝
func (a *Authorizer) Allow(role, route, method string) (bool, error) {
	if a == nil || a.enforcer == nil {
		return false, ErrUnavailable
	}
	name, err := normalizeRole(role)
	if err != nil {
		return false, nil
	}
	return a.enforcer.Enforce(subjectOf(name), RouteKey(route), strings.ToUpper(strings.TrimSpace(method)))
}

// RouteKey 把请求路径或路由模板归一为授权资源（去掉 /api/v1 前缀）
func RouteKey(route string) string {
	key := strings.TrimSpace(route)
	if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}
	key = strings.TrimPrefix(key, apiV1Prefix)
	if key == "" {
		return "/"
	}
	return key
}

func normalizeRole(role string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(role))
	name = strings.TrimPrefix(name, subjectPrefix)
	if !roleNamePattern.MatchString(name) {
		return "", ErrInvalidRole
	}
	return name, nil
}

func normalizeGrant(grant Grant) (Grant, error) {
	role, err := normalizeRole(grant.Role)
	if err != nil {
		return Grant{}, err
	}
	method := strings.ToUpper(strings.TrimSpace(grant.Method))
	if strings.TrimSpace(grant.Route) == "" || !allowedMethods[method] {
		return Grant{}, ErrInvalidGrant
	}
	return Grant{Role: role, Route: RouteKey(grant.Route), Method: method}, nil
}

func subjectOf(role string) string {
	return subjectPrefix + role
}

func roleOf(subject string) string {
	return strings.TrimPrefix(subject, subjectPrefix)
}
