package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runRBAC(t *testing.T, userRoles []string, required ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if userRoles != nil {
		ctx := context.WithValue(req.Context(), UserRolesKey, userRoles)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireRole(required...)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequireRoleAllows(t *testing.T) {
	if err := runRBAC(t, []string{RoleNurse}, RoleNurse, RoleClinicalOfficer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRoleDenies(t *testing.T) {
	err := runRBAC(t, []string{RoleCHV}, RolePharmacist)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireRoleAdminOverride(t *testing.T) {
	if err := runRBAC(t, []string{RoleAdmin}, RolePharmacist); err != nil {
		t.Fatalf("expected admin to pass any check, got %v", err)
	}
}

func TestRequireRoleNoRoles(t *testing.T) {
	err := runRBAC(t, nil, RoleDataClerk)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}
