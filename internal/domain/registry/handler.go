package registry

import (
	"errors"
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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole(
		auth.RolePublicHealthOfficer, auth.RoleMEOfficer, auth.RoleFacilityManager,
		auth.RoleClinicalOfficer, auth.RoleNurse, auth.RoleDataClerk, auth.RoleCHV))
	readGroup.GET("/households/:id", h.GetHousehold)
	readGroup.GET("/households/:id/members", h.ListHouseholdMembers)
	readGroup.GET("/wards/:id/households", h.ListHouseholdsByWard)
	readGroup.GET("/community-units/:id/households", h.ListHouseholdsByCommunityUnit)
	readGroup.GET("/persons", h.ListPersons)
	readGroup.GET("/persons/:id", h.GetPerson)

	writeGroup := api.Group("", auth.RequireRole(
		auth.RolePublicHealthOfficer, auth.RoleFacilityManager,
		auth.RoleClinicalOfficer, auth.RoleNurse, auth.RoleDataClerk, auth.RoleCHV))
	writeGroup.POST("/households", h.RegisterHousehold)
	writeGroup.PUT("/households/:id", h.UpdateHousehold)
	writeGroup.POST("/persons", h.RegisterPerson)
	writeGroup.PUT("/persons/:id", h.UpdatePerson)

	// Anonymization replaces deletion and needs county sign-off.
	api.POST("/persons/:id/anonymize", h.AnonymizePerson,
		auth.RequireRole(auth.RolePublicHealthOfficer))
}

// -- Household Handlers --

func (h *Handler) RegisterHousehold(c echo.Context) error {
	var hh Household
	if err := c.Bind(&hh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterHousehold(c.Request().Context(), &hh); err != nil {
		if errors.Is(err, ErrDuplicateHousehold) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, hh)
}

func (h *Handler) GetHousehold(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	hh, err := h.svc.GetHousehold(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "household not found")
	}
	return c.JSON(http.StatusOK, hh)
}

func (h *Handler) UpdateHousehold(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var hh Household
	if err := c.Bind(&hh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hh.ID = id
	if err := h.svc.UpdateHousehold(c.Request().Context(), &hh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, hh)
}

func (h *Handler) ListHouseholdsByWard(c echo.Context) error {
	wardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ward id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListHouseholdsByWard(c.Request().Context(), wardID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListHouseholdsByCommunityUnit(c echo.Context) error {
	cuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid community unit id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListHouseholdsByCommunityUnit(c.Request().Context(), cuID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Person Handlers --

func (h *Handler) RegisterPerson(c echo.Context) error {
	var p Person
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterPerson(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrDuplicateID) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPerson(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPerson(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "person not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPersons(c echo.Context) error {
	if nationalID := c.QueryParam("national_id"); nationalID != "" {
		p, err := h.svc.FindPersonByNationalID(c.Request().Context(), nationalID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "person not found")
		}
		return c.JSON(http.StatusOK, p)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPersons(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListHouseholdMembers(c echo.Context) error {
	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid household id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListHouseholdMembers(c.Request().Context(), householdID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdatePerson(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Person
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdatePerson(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrDuplicateID) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "person not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) AnonymizePerson(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.AnonymizePerson(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "person not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
