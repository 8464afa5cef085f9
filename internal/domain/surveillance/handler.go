package surveillance

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole(
		auth.RolePublicHealthOfficer, auth.RoleMEOfficer, auth.RoleFacilityManager,
		auth.RoleClinicalOfficer, auth.RoleNurse, auth.RoleDataClerk))
	readGroup.GET("/surveillance-reports", h.ListReports)
	readGroup.GET("/surveillance-reports/:id", h.GetReport)
	readGroup.GET("/mortality-reports", h.ListDeaths)
	readGroup.GET("/mortality-reports/:id", h.GetDeath)

	writeGroup := api.Group("", auth.RequireRole(
		auth.RolePublicHealthOfficer, auth.RoleFacilityManager,
		auth.RoleClinicalOfficer, auth.RoleNurse))
	writeGroup.POST("/surveillance-reports", h.RecordReport)
	writeGroup.PUT("/surveillance-reports/:id", h.UpdateReport)
	writeGroup.POST("/mortality-reports", h.RecordDeath)

	// Only the public health officer can declare an outbreak.
	outbreakGroup := api.Group("", auth.RequireRole(auth.RolePublicHealthOfficer))
	outbreakGroup.POST("/surveillance-reports/:id/declare-outbreak", h.DeclareOutbreak)
}

func (h *Handler) RecordReport(c echo.Context) error {
	var r Report
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if r.ReportedBy == nil {
		r.ReportedBy = currentUser(c)
	}
	if err := h.svc.RecordReport(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "surveillance report not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListReports(c echo.Context) error {
	if number := c.QueryParam("number"); number != "" {
		r, err := h.svc.GetReportByNumber(c.Request().Context(), number)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "surveillance report not found")
		}
		return c.JSON(http.StatusOK, r)
	}

	var filter ListFilter
	if v := c.QueryParam("ward_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid ward_id")
		}
		filter.WardID = id
	}
	if v := c.QueryParam("facility_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid facility_id")
		}
		filter.FacilityID = id
	}
	filter.DiseaseName = c.QueryParam("disease")
	filter.Source = c.QueryParam("source")
	if v := c.QueryParam("outbreak"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid outbreak")
		}
		filter.Outbreak = &b
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListReports(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var r Report
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r.ID = id
	if err := h.svc.UpdateReport(c.Request().Context(), &r); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "surveillance report not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

type declareOutbreakRequest struct {
	ResponseDetails string `json:"response_details"`
}

func (h *Handler) DeclareOutbreak(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req declareOutbreakRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.DeclareOutbreak(c.Request().Context(), id, req.ResponseDetails)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "surveillance report not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) RecordDeath(c echo.Context) error {
	var m MortalityReport
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if m.ReportedBy == nil {
		m.ReportedBy = currentUser(c)
	}
	if err := h.svc.RecordDeath(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetDeath(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.GetDeath(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "mortality report not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListDeaths(c echo.Context) error {
	var filter MortalityFilter
	if v := c.QueryParam("ward_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid ward_id")
		}
		filter.WardID = id
	}
	if v := c.QueryParam("facility_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid facility_id")
		}
		filter.FacilityID = id
	}
	filter.DeathCategory = c.QueryParam("category")

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDeaths(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func currentUser(c echo.Context) *uuid.UUID {
	raw := auth.UserIDFromContext(c.Request().Context())
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
