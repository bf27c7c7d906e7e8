package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vitrina-next/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func mustEnforce(t *testing.T, svc *Service, role, obj, act string) bool {
	t.Helper()
	allow, err := svc.EnforceRole(role, obj, act)
	if err != nil {
		t.Fatalf("enforce %s %s %s failed: %v", role, act, obj, err)
	}
	return allow
}

func TestBuiltinRolesMatrix(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}

	if !mustEnforce(t, svc, constants.AdminRoleSuperadmin, "/api/v1/admin/accounts/:id", "DELETE") {
		t.Fatalf("superadmin should manage accounts")
	}
	if !mustEnforce(t, svc, constants.AdminRoleSME, "/api/v1/admin/products/:id/toggle", "post") {
		t.Fatalf("sme should toggle products")
	}
	if !mustEnforce(t, svc, constants.AdminRoleSME, "/api/v1/admin/payouts", "POST") {
		t.Fatalf("sme should record payouts")
	}
	if mustEnforce(t, svc, constants.AdminRoleSME, "/api/v1/admin/accounts", "GET") {
		t.Fatalf("sme must not list admin accounts")
	}
	if mustEnforce(t, svc, constants.AdminRoleSME, "/api/v1/admin/authz/roles", "GET") {
		t.Fatalf("sme must not read authz roles")
	}
	if mustEnforce(t, svc, "guest", "/api/v1/admin/products", "GET") {
		t.Fatalf("unknown role must be denied")
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	for i := 0; i < 2; i++ {
		if err := svc.BootstrapBuiltinRoles(); err != nil {
			t.Fatalf("bootstrap #%d failed: %v", i, err)
		}
	}
	policies, err := svc.GetRolePolicies(constants.AdminRoleSuperadmin)
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/admin/*" || policies[0].Action != "*" {
		t.Fatalf("unexpected superadmin policies: %+v", policies)
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if strings.Join(roles, ",") != "role:sme,role:superadmin" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestGrantAndRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("sme", "/admin/accounts", "GET"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !mustEnforce(t, svc, "sme", "/admin/accounts", "GET") {
		t.Fatalf("expected granted policy to allow")
	}
	if err := svc.RevokeRolePolicy("sme", "/admin/accounts", "GET"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if mustEnforce(t, svc, "sme", "/admin/accounts", "GET") {
		t.Fatalf("expected revoked policy to deny")
	}
	if err := svc.GrantRolePolicy("sme", "/admin/x", " "); err == nil {
		t.Fatalf("expected empty action to fail")
	}
}

func TestNormalizeHelpers(t *testing.T) {
	if got := NormalizeObject("/api/v1/admin/products"); got != "/admin/products" {
		t.Fatalf("unexpected object: %s", got)
	}
	if got := NormalizeObject("admin/orders"); got != "/admin/orders" {
		t.Fatalf("unexpected object: %s", got)
	}
	if got, _ := NormalizeRole(" SuperAdmin "); got != "role:superadmin" {
		t.Fatalf("unexpected role: %s", got)
	}
	if _, err := NormalizeRole("role:"); err == nil {
		t.Fatalf("expected empty role to fail")
	}
}

func TestPolicyValidation(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}

	if err := svc.GrantRolePolicy("sme", "/admin/orders", "FETCH"); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("unknown verb should be rejected, got %v", err)
	}
	if err := svc.GrantRolePolicy("sme", "/api/v1/public/cart", "GET"); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("non-admin object should be rejected, got %v", err)
	}
	if err := svc.GrantRolePolicy("role:__anchor__", "/admin/orders", "GET"); !errors.Is(err, ErrReservedRole) {
		t.Fatalf("anchor role should be reserved, got %v", err)
	}
	if err := svc.GrantRolePolicy("  ", "/admin/orders", "GET"); !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("blank role should be rejected, got %v", err)
	}
	if err := svc.RevokeRolePolicy(constants.AdminRoleSuperadmin, "/api/v1/admin/*", "*"); !errors.Is(err, ErrProtectedPolicy) {
		t.Fatalf("superadmin wildcard should be protected, got %v", err)
	}
	if !mustEnforce(t, svc, constants.AdminRoleSuperadmin, "/admin/accounts", "GET") {
		t.Fatalf("superadmin should keep full access")
	}
}

func TestNilServiceIsUnavailable(t *testing.T) {
	var svc *Service
	if _, err := svc.Enforce("role:sme", "/admin/me", "GET"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("nil service should be unavailable, got %v", err)
	}
	if _, err := svc.ListRoles(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("nil service should be unavailable, got %v", err)
	}
}

func TestCustomRoleIsListed(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("Store Owner", "/admin/orders", "get"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if strings.Join(roles, ",") != "role:store_owner" {
		t.Fatalf("unexpected roles: %v", roles)
	}
	policies, err := svc.GetRolePolicies("role:store_owner")
	if err != nil || len(policies) != 1 || policies[0].Action != "GET" {
		t.Fatalf("unexpected policies: %+v err=%v", policies, err)
	}
}
