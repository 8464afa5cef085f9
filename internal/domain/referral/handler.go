package referral

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
	readGroup.GET("/referrals", h.ListReferrals)
	readGroup.GET("/referrals/:id", h.GetReferral)
	readGroup.GET("/referrals/:id/follow-ups", h.ListFollowUps)

	writeGroup := api.Group("", auth.RequireRole(
		auth.RoleFacilityManager, auth.RoleClinicalOfficer, auth.RoleNurse))
	writeGroup.POST("/referrals", h.CreateReferral)
	writeGroup.POST("/referrals/:id/accept", h.Accept)
	writeGroup.POST("/referrals/:id/in-transit", h.MarkInTransit)
	writeGroup.POST("/referrals/:id/arrive", h.MarkArrived)
	writeGroup.POST("/referrals/:id/complete", h.Complete)
	writeGroup.POST("/referrals/:id/cancel", h.Cancel)
	writeGroup.POST("/referrals/:id/reopen", h.Reopen)
	writeGroup.POST("/referrals/:id/follow-ups", h.AddFollowUp)
}

func (h *Handler) CreateReferral(c echo.Context) error {
	var r Referral
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateReferral(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetReferral(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetReferral(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "referral not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListReferrals(c echo.Context) error {
	if number := c.QueryParam("number"); number != "" {
		r, err := h.svc.GetReferralByNumber(c.Request().Context(), number)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "referral not found")
		}
		return c.JSON(http.StatusOK, r)
	}

	var filter ListFilter
	if v := c.QueryParam("person_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid person_id")
		}
		filter.PersonID = id
	}
	if v := c.QueryParam("from_facility_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from_facility_id")
		}
		filter.FromFacilityID = id
	}
	if v := c.QueryParam("to_facility_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to_facility_id")
		}
		filter.ToFacilityID = id
	}
	filter.Status = c.QueryParam("status")
	filter.Urgency = c.QueryParam("urgency")

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListReferrals(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func transitionError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "referral not found")
	}
	if errors.Is(err, ErrInvalidTransition) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
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

func (h *Handler) Accept(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "accepting user is unknown")
	}
	r, err := h.svc.Accept(c.Request().Context(), id, *user)
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) MarkInTransit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.MarkInTransit(c.Request().Context(), id, currentUser(c))
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) MarkArrived(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.MarkArrived(c.Request().Context(), id, currentUser(c))
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type completeRequest struct {
	Outcome  string `json:"outcome"`
	Feedback string `json:"feedback"`
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.Complete(c.Request().Context(), id, req.Outcome, req.Feedback, currentUser(c))
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.Cancel(c.Request().Context(), id, req.Reason, currentUser(c))
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Reopen(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.Reopen(c.Request().Context(), id, req.Reason, currentUser(c))
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) AddFollowUp(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var f FollowUp
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f.ReferralID = id
	if f.RecordedBy == nil {
		f.RecordedBy = currentUser(c)
	}
	if err := h.svc.AddFollowUp(c.Request().Context(), &f); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "referral not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) ListFollowUps(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListFollowUps(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
