package authz

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestAuthorizer(t *testing.T) *Authorizer {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	a, err := NewAuthorizer(db)
	if err != nil {
		t.Fatalf("new authorizer failed: %v", err)
	}
	if err := a.SeedBuiltinRoles(); err != nil {
		t.Fatalf("seed roles failed: %v", err)
	}
	return a
}

func mustAllow(t *testing.T, a *Authorizer, role, route, method string) bool {
	t.Helper()
	ok, err := a.Allow(role, route, method)
	if err != nil {
		t.Fatalf("allow %s %s %s failed: %v", role, method, route, err)
	}
	return ok
}

func TestBuiltinRoleMatrix(t *testing.T) {
	a := newTestAuthorizer(t)

	cases := []struct {
		role   string
		route  string
		method string
		want   bool
	}{
		{"admin", "/api/v1/orders/all", "GET", true},
		{"moderator", "/api/v1/orders/all", "GET", false},
		{"user", "/api/v1/orders/all", "GET", false},
		{"moderator", "/api/v1/admin/products", "POST", true},
		{"moderator", "/api/v1/admin/kits/:id", "DELETE", true},
		{"moderator", "/api/v1/admin/orders/:id", "GET", false},
		{"moderator", "/api/v1/admin/authz/roles", "GET", false},
		{"moderator", "/api/v1/kitrequests/requests", "GET", true},
		{"moderator", "/api/v1/admin/kit-requests/:id", "PATCH", true},
		{"user", "/api/v1/kitrequests/requests", "GET", false},
		{"admin", "/api/v1/kitrequests/requests", "GET", true},
		{"admin", "/api/v1/admin/authz/grants", "DELETE", true},
		{"admin", "/api/v1/admin/orders/:id/confirmation", "POST", true},
		{"ghost", "/api/v1/admin/products", "GET", false},
		{"", "/api/v1/admin/products", "GET", false},
	}
	for _, tc := range cases {
		if got := mustAllow(t, a, tc.role, tc.route, tc.method); got != tc.want {
			t.Fatalf("%s %s %s: want %v got %v", tc.role, tc.method, tc.route, tc.want, got)
		}
	}
}

func TestSeedBuiltinRolesIsIdempotent(t *testing.T) {
	a := newTestAuthorizer(t)
	if err := a.SeedBuiltinRoles(); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	grants, err := a.Grants("moderator")
	if err != nil {
		t.Fatalf("list grants failed: %v", err)
	}
	if len(grants) != 6 {
		t.Fatalf("moderator should keep 6 grants, got %d: %+v", len(grants), grants)
	}
	for _, g := range grants {
		if g.Route == "/orders/all" {
			t.Fatalf("moderator must not hold /orders/all: %+v", grants)
		}
	}

	roles, err := a.Roles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 3 {
		t.Fatalf("want 3 builtin roles, got %+v", roles)
	}
	if roles[0].Name != "admin" || len(roles[0].Inherits) != 1 || roles[0].Inherits[0] != "moderator" || !roles[0].Builtin {
		t.Fatalf("unexpected admin role: %+v", roles[0])
	}
	if roles[2].Name != "user" || len(roles[2].Inherits) != 0 {
		t.Fatalf("unexpected user role: %+v", roles[2])
	}
}

func TestCustomRoleGrantAndRevoke(t *testing.T) {
	a := newTestAuthorizer(t)

	role, err := a.CreateRole(" Auditor ", nil)
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if role.Name != "auditor" || len(role.Inherits) != 1 || role.Inherits[0] != "user" {
		t.Fatalf("unexpected role: %+v", role)
	}
	if _, err := a.CreateRole("auditor", nil); !errors.Is(err, ErrRoleExists) {
		t.Fatalf("want ErrRoleExists, got %v", err)
	}
	if _, err := a.CreateRole("x", nil); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("want ErrInvalidRole, got %v", err)
	}
	if _, err := a.CreateRole("intern", []string{"nobody"}); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("want ErrRoleNotFound, got %v", err)
	}

	if mustAllow(t, a, "auditor", "/api/v1/orders/all", "GET") {
		t.Fatalf("auditor should start without /orders/all")
	}
	if err := a.GrantAccess(Grant{Role: "auditor", Route: "/api/v1/orders/all", Method: "get"}); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !mustAllow(t, a, "auditor", "/api/v1/orders/all", "GET") {
		t.Fatalf("auditor should read /orders/all after grant")
	}
	if mustAllow(t, a, "auditor", "/api/v1/orders/all", "POST") {
		t.Fatalf("grant must be bound to its method")
	}

	if err := a.GrantAccess(Grant{Role: "auditor", Route: "/orders/all", Method: "TRACE"}); !errors.Is(err, ErrInvalidGrant) {
		t.Fatalf("want ErrInvalidGrant, got %v", err)
	}
	if err := a.GrantAccess(Grant{Role: "nobody", Route: "/orders/all", Method: "GET"}); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("want ErrRoleNotFound, got %v", err)
	}

	if err := a.RevokeAccess(Grant{Role: "auditor", Route: "/orders/all", Method: "GET"}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if mustAllow(t, a, "auditor", "/api/v1/orders/all", "GET") {
		t.Fatalf("revoked grant still allows access")
	}
	if err := a.RevokeAccess(Grant{Role: "auditor", Route: "/orders/all", Method: "GET"}); !errors.Is(err, ErrGrantNotFound) {
		t.Fatalf("want ErrGrantNotFound, got %v", err)
	}
	if err := a.RevokeAccess(Grant{Role: "admin", Route: "/orders/all", Method: "GET"}); !errors.Is(err, ErrBuiltinGrant) {
		t.Fatalf("want ErrBuiltinGrant, got %v", err)
	}
}

func TestRouteKey(t *testing.T) {
	cases := map[string]string{
		"/api/v1/orders/all": "/orders/all",
		"orders/all":         "/orders/all",
		"/api/v1":            "/",
		" /admin/kits/:id ":  "/admin/kits/:id",
	}
	for in, want := range cases {
		if got := RouteKey(in); got != want {
			t.Fatalf("RouteKey(%q): want %q got %q", in, want, got)
		}
	}
}

func TestNilAuthorizerIsUnavailable(t *testing.T) {
	var a *Authorizer
	if _, err := a.Allow("admin", "/orders/all", "GET"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
