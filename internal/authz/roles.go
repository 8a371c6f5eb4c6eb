package authz

import (
	"fmt"
	"sort"

	"github.com/kitshop/internal/constants"
)

// RoleInfo 角色及其直接父角色
type RoleInfo struct {
	Name     string   `json:"name"`
	Inherits []string `json:"inherits"`
	Builtin  bool     `json:"builtin"`
}

type roleSeed struct {
	name     string
	inherits []string
	grants   []Grant
}

// 内置角色：moderator 维护目录与咨询线索，admin 额外拥有全部管理端与全量订单
var builtinRoles = []roleSeed{
	{name: constants.RoleUser},
	{
		name:     constants.RoleModerator,
		inherits: []string{constants.RoleUser},
		grants: []Grant{
			{Route: "/admin/products", Method: "*"},
			{Route: "/admin/products/:id", Method: "*"},
			{Route: "/admin/kits", Method: "*"},
			{Route: "/admin/kits/:id", Method: "*"},
			{Route: "/kitrequests/requests", Method: "GET"},
			{Route: "/admin/kit-requests/:id", Method: "PATCH"},
		},
	},
	{
		name:     constants.RoleAdmin,
		inherits: []string{constants.RoleModerator},
		grants: []Grant{
			{Route: "/admin/*", Method: "*"},
			{Route: "/orders/all", Method: "GET"},
		},
	},
}

func builtinSeed(role string) (roleSeed, bool) {
	for _, seed := range builtinRoles {
		if seed.name == role {
			return seed, true
		}
	}
	return roleSeed{}, false
}

// SeedBuiltinRoles 写入内置角色与授权，可重复执行
func (a *Authorizer) SeedBuiltinRoles() error {
	if a == nil || a.enforcer == nil {
		return ErrUnavailable
	}
	for _, seed := range builtinRoles {
		// 自身分组保证无父角色的 user 也能出现在角色列表且能命中自身策略
		if _, err := a.enforcer.AddNamedGroupingPolicy("g", subjectOf(seed.name), subjectOf(seed.name)); err != nil {
			return fmt.Errorf("authz: seed role %s: %w", seed.name, err)
		}
		for _, parent := range seed.inherits {
			if _, err := a.enforcer.AddNamedGroupingPolicy("g", subjectOf(seed.name), subjectOf(parent)); err != nil {
				return fmt.Errorf("authz: link %s -> %s: %w", seed.name, parent, err)
			}
		}
		for _, grant := range seed.grants {
			grant.Role = seed.name
			if err := a.GrantAccess(grant); err != nil {
				return fmt.Errorf("authz: seed grant %s %s: %w", grant.Method, grant.Route, err)
			}
		}
	}
	return nil
}

// CreateRole 新建角色，未指定父角色时继承 user
func (a *Authorizer) CreateRole(name string, inherits []string) (RoleInfo, error) {
	if a == nil || a.enforcer == nil {
		return RoleInfo{}, ErrUnavailable
	}
	role, err := normalizeRole(name)
	if err != nil {
		return RoleInfo{}, err
	}
	exists, err := a.roleExists(role)
	if err != nil {
		return RoleInfo{}, err
	}
	if exists {
		return RoleInfo{}, ErrRoleExists
	}
	if len(inherits) == 0 {
		inherits = []string{constants.RoleUser}
	}
	parents := make([]string, 0, len(inherits))
	for _, raw := range inherits {
		parent, err := normalizeRole(raw)
		if err != nil {
			return RoleInfo{}, err
		}
		ok, err := a.roleExists(parent)
		if err != nil {
			return RoleInfo{}, err
		}
		if !ok {
			return RoleInfo{}, fmt.Errorf("%w: %s", ErrRoleNotFound, parent)
		}
		parents = append(parents, parent)
	}

	if _, err := a.enforcer.AddNamedGroupingPolicy("g", subjectOf(role), subjectOf(role)); err != nil {
		return RoleInfo{}, fmt.Errorf("authz: create role %s: %w", role, err)
	}
	for _, parent := range parents {
		if _, err := a.enforcer.AddNamedGroupingPolicy("g", subjectOf(role), subjectOf(parent)); err != nil {
			return RoleInfo{}, fmt.Errorf("authz: link %s -> %s: %w", role, parent, err)
		}
	}
	return RoleInfo{Name: role, Inherits: parents}, nil
}

// Roles 列出全部角色（按名称排序）
func (a *Authorizer) Roles() ([]RoleInfo, error) {
	if a == nil || a.enforcer == nil {
		return nil, ErrUnavailable
	}
	links, err := a.enforcer.GetNamedGroupingPolicy("g")
	if err != nil {
		return nil, fmt.Errorf("authz: list roles: %w", err)
	}
	parents := make(map[string][]string)
	for _, link := range links {
		if len(link) < 2 {
			continue
		}
		child, parent := roleOf(link[0]), roleOf(link[1])
		if _, ok := parents[child]; !ok {
			parents[child] = []string{}
		}
		if parent != child {
			parents[child] = append(parents[child], parent)
		}
	}
	roles := make([]RoleInfo, 0, len(parents))
	for name, inherits := range parents {
		sort.Strings(inherits)
		_, builtin := builtinSeed(name)
		roles = append(roles, RoleInfo{Name: name, Inherits: inherits, Builtin: builtin})
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

// Grants 列出角色的直接授权（不含继承）
func (a *Authorizer) Grants(role string) ([]Grant, error) {
	if a == nil || a.enforcer == nil {
		return nil, ErrUnavailable
	}
	name, err := normalizeRole(role)
	if err != nil {
		return nil, err
	}
	ok, err := a.roleExists(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRoleNotFound
	}
	rules, err := a.enforcer.GetFilteredPolicy(0, subjectOf(name))
	if err != nil {
		return nil, fmt.Errorf("authz: list grants: %w", err)
	}
	grants := make([]Grant, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		grants = append(grants, Grant{Role: name, Route: rule[1], Method: rule[2]})
	}
	sort.Slice(grants, func(i, j int) bool {
		if grants[i].Route == grants[j].Route {
			return grants[i].Method < grants[j].Method
		}
		return grants[i].Route < grants[j].Route
	})
	return grants, nil
}

// GrantAccess 授予访问，重复授予为空操作
func (a *Authorizer) GrantAccess(grant Grant) error {
	if a == nil || a.enforcer == nil {
		return ErrUnavailable
	}
	normalized, err := normalizeGrant(grant)
	if err != nil {
		return err
	}
	if _, isBuiltin := builtinSeed(normalized.Role); !isBuiltin {
		ok, err := a.roleExists(normalized.Role)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoleNotFound
		}
	}
	if _, err := a.enforcer.AddPolicy(subjectOf(normalized.Role), normalized.Route, normalized.Method); err != nil {
		return fmt.Errorf("authz: grant: %w", err)
	}
	return nil
}

// RevokeAccess 撤销授权，内置授权不可撤销
func (a *Authorizer) RevokeAccess(grant Grant) error {
	if a == nil || a.enforcer == nil {
		return ErrUnavailable
	}
	normalized, err := normalizeGrant(grant)
	if err != nil {
		return err
	}
	if seed, ok := builtinSeed(normalized.Role); ok {
		for _, g := range seed.grants {
			if RouteKey(g.Route) == normalized.Route && g.Method == normalized.Method {
				return ErrBuiltinGrant
			}
		}
	}
	removed, err := a.enforcer.RemovePolicy(subjectOf(normalized.Role), normalized.Route, normalized.Method)
	if err != nil {
		return fmt.Errorf("authz: revoke: %w", err)
	}
	if !removed {
		return ErrGrantNotFound
	}
	return nil
}

func (a *Authorizer) roleExists(role string) (bool, error) {
	ok, err := a.enforcer.HasNamedGroupingPolicy("g", subjectOf(role), subjectOf(role))
	if err != nil {
		return false, fmt.Errorf("authz: lookup role %s: %w", role, err)
	}
	return ok, nil
}
