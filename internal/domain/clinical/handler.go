package clinical

import (
	"errors"
	"net/http"
	"time"

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
	readGroup.GET("/pregnancies", h.ListPregnancies)
	readGroup.GET("/pregnancies/:id", h.GetPregnancy)
	readGroup.GET("/pregnancies/:id/anc-visits", h.ListANCVisits)
	readGroup.GET("/pregnancies/:id/pnc-visits", h.ListPNCVisits)
	readGroup.GET("/anc-visits/:id", h.GetANCVisit)
	readGroup.GET("/pnc-visits/:id", h.GetPNCVisit)
	readGroup.GET("/persons/:id/pregnancies", h.ListPregnanciesByPerson)
	readGroup.GET("/persons/:id/immunizations", h.ListImmunizations)
	readGroup.GET("/persons/:id/screenings", h.ListScreenings)
	readGroup.GET("/immunizations/:id", h.GetImmunization)
	readGroup.GET("/screenings/:id", h.GetScreening)

	writeGroup := api.Group("", auth.RequireRole(
		auth.RoleClinicalOfficer, auth.RoleNurse))
	writeGroup.POST("/pregnancies", h.CreatePregnancy)
	writeGroup.PUT("/pregnancies/:id", h.UpdatePregnancy)
	writeGroup.POST("/pregnancies/:id/delivery", h.RecordDeliveryOutcome)
	writeGroup.POST("/pregnancies/:id/anc-visits", h.RecordANCVisit)
	writeGroup.PUT("/anc-visits/:id", h.UpdateANCVisit)
	writeGroup.POST("/pregnancies/:id/pnc-visits", h.RecordPNCVisit)
	writeGroup.PUT("/pnc-visits/:id", h.UpdatePNCVisit)
	writeGroup.POST("/immunizations", h.RecordImmunization)
	writeGroup.POST("/screenings", h.RecordScreening)
	writeGroup.PUT("/screenings/:id", h.UpdateScreening)
}

// -- Pregnancy Handlers --

func (h *Handler) CreatePregnancy(c echo.Context) error {
	var p Pregnancy
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePregnancy(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPregnancy(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPregnancy(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePregnancy(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Pregnancy
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdatePregnancy(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type deliveryOutcomeRequest struct {
	DeliveryDate    time.Time  `json:"delivery_date"`
	DeliveryOutcome string     `json:"delivery_outcome"`
	FacilityID      *uuid.UUID `json:"facility_id"`
}

func (h *Handler) RecordDeliveryOutcome(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req deliveryOutcomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RecordDeliveryOutcome(c.Request().Context(), id,
		req.DeliveryDate, req.DeliveryOutcome, req.FacilityID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPregnancies(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPregnancies(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListPregnanciesByPerson(c echo.Context) error {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid person id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPregnanciesByPerson(c.Request().Context(), personID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- ANC Visit Handlers --

func (h *Handler) RecordANCVisit(c echo.Context) error {
	pregnancyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pregnancy id")
	}
	var v ANCVisit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.PregnancyID = pregnancyID
	if err := h.svc.RecordANCVisit(c.Request().Context(), &v); err != nil {
		if errors.Is(err, ErrVisitSlotTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) GetANCVisit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.GetANCVisit(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "anc visit not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) UpdateANCVisit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var v ANCVisit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = id
	if err := h.svc.UpdateANCVisit(c.Request().Context(), &v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "anc visit not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListANCVisits(c echo.Context) error {
	pregnancyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pregnancy id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListANCVisits(c.Request().Context(), pregnancyID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- PNC Visit Handlers --

func (h *Handler) RecordPNCVisit(c echo.Context) error {
	pregnancyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pregnancy id")
	}
	var v PNCVisit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.PregnancyID = pregnancyID
	if err := h.svc.RecordPNCVisit(c.Request().Context(), &v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) GetPNCVisit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.GetPNCVisit(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "pnc visit not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) UpdatePNCVisit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var v PNCVisit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = id
	if err := h.svc.UpdatePNCVisit(c.Request().Context(), &v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pnc visit not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListPNCVisits(c echo.Context) error {
	pregnancyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pregnancy id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPNCVisits(c.Request().Context(), pregnancyID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Immunization Handlers --

func (h *Handler) RecordImmunization(c echo.Context) error {
	var im Immunization
	if err := c.Bind(&im); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordImmunization(c.Request().Context(), &im); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, im)
}

func (h *Handler) GetImmunization(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	im, err := h.svc.GetImmunization(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "immunization not found")
	}
	return c.JSON(http.StatusOK, im)
}

func (h *Handler) ListImmunizations(c echo.Context) error {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid person id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListImmunizations(c.Request().Context(), personID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Screening Handlers --

func (h *Handler) RecordScreening(c echo.Context) error {
	var sc Screening
	if err := c.Bind(&sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordScreening(c.Request().Context(), &sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sc)
}

func (h *Handler) GetScreening(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sc, err := h.svc.GetScreening(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "screening not found")
	}
	return c.JSON(http.StatusOK, sc)
}

func (h *Handler) UpdateScreening(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sc Screening
	if err := c.Bind(&sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sc.ID = id
	if err := h.svc.UpdateScreening(c.Request().Context(), &sc); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "screening not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sc)
}

func (h *Handler) ListScreenings(c echo.Context) error {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid person id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListScreenings(c.Request().Context(), personID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
