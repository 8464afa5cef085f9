package audit

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chis/chis/internal/platform/auth"
	"github.com/chis/chis/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// The trail is read-only over HTTP; entries arrive through the audit
// middleware, never through the API.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RolePublicHealthOfficer, auth.RoleMEOfficer))
	g.GET("/audit-logs", h.ListEntries)
	g.GET("/audit-logs/:id", h.GetEntry)
}

func (h *Handler) GetEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	l, err := h.svc.GetEntry(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "audit entry not found")
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) ListEntries(c echo.Context) error {
	filter := ListFilter{
		Actor:      c.QueryParam("actor"),
		Action:     c.QueryParam("action"),
		EntityType: c.QueryParam("entity_type"),
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListEntries(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
