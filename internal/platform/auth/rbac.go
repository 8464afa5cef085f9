package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Roles used across the county health system. "admin" implicitly satisfies
// every role check.
const (
	RoleAdmin               = "admin"
	RolePublicHealthOfficer = "public_health_officer"
	RoleMEOfficer           = "me_officer"
	RoleFacilityManager     = "facility_manager"
	RoleClinicalOfficer     = "clinical_officer"
	RoleNurse               = "nurse"
	RolePharmacist          = "pharmacist"
	RoleDataClerk           = "data_clerk"
	RoleCHV                 = "chv"
)

// RequireRole returns middleware that checks if the user has at least one of
// the specified roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, required := range roles {
				for _, has := range userRoles {
					if has == required || has == RoleAdmin {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
