package supply

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
		auth.RoleClinicalOfficer, auth.RoleNurse, auth.RolePharmacist, auth.RoleDataClerk))
	readGroup.GET("/commodities", h.ListCommodities)
	readGroup.GET("/commodities/:id", h.GetCommodity)
	readGroup.GET("/commodities/:id/stock", h.ListStockByCommodity)
	readGroup.GET("/facilities/:id/stock", h.ListStockByFacility)
	readGroup.GET("/facilities/:id/stock/low", h.ListLowStock)
	readGroup.GET("/facilities/:id/stock-transactions", h.ListTransactionsByFacility)
	readGroup.GET("/stock/:id", h.GetStock)
	readGroup.GET("/stock-transactions/:id", h.GetTransaction)

	catalogGroup := api.Group("", auth.RequireRole(
		auth.RolePublicHealthOfficer, auth.RoleFacilityManager, auth.RolePharmacist))
	catalogGroup.POST("/commodities", h.CreateCommodity)
	catalogGroup.PUT("/commodities/:id", h.UpdateCommodity)

	stockGroup := api.Group("", auth.RequireRole(
		auth.RoleFacilityManager, auth.RolePharmacist))
	stockGroup.POST("/stock-transactions", h.RecordTransaction)
	stockGroup.POST("/stock-transfers", h.TransferStock)
	stockGroup.POST("/stock/reconcile", h.Reconcile)
}

// -- Commodity Handlers --

func (h *Handler) CreateCommodity(c echo.Context) error {
	var cm Commodity
	if err := c.Bind(&cm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCommodity(c.Request().Context(), &cm); err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cm)
}

func (h *Handler) GetCommodity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cm, err := h.svc.GetCommodity(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "commodity not found")
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *Handler) UpdateCommodity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cm Commodity
	if err := c.Bind(&cm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cm.ID = id
	if err := h.svc.UpdateCommodity(c.Request().Context(), &cm); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "commodity not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *Handler) ListCommodities(c echo.Context) error {
	if code := c.QueryParam("code"); code != "" {
		cm, err := h.svc.GetCommodityByCode(c.Request().Context(), code)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "commodity not found")
		}
		return c.JSON(http.StatusOK, cm)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCommodities(c.Request().Context(),
		c.QueryParam("type"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Stock Handlers --

func (h *Handler) RecordTransaction(c echo.Context) error {
	var t StockTransaction
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if t.PerformedBy == nil {
		t.PerformedBy = currentUser(c)
	}
	if err := h.svc.RecordTransaction(c.Request().Context(), &t); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "commodity not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

type transferRequest struct {
	CommodityID    uuid.UUID `json:"commodity_id"`
	FromFacilityID uuid.UUID `json:"from_facility_id"`
	ToFacilityID   uuid.UUID `json:"to_facility_id"`
	BatchNumber    string    `json:"batch_number"`
	Quantity       int       `json:"quantity"`
}

func (h *Handler) TransferStock(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, in, err := h.svc.TransferStock(c.Request().Context(), req.CommodityID,
		req.FromFacilityID, req.ToFacilityID, req.BatchNumber, req.Quantity,
		currentUser(c))
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "commodity not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]*StockTransaction{
		"out": out,
		"in":  in,
	})
}

type reconcileRequest struct {
	CommodityID uuid.UUID `json:"commodity_id"`
	FacilityID  uuid.UUID `json:"facility_id"`
	BatchNumber string    `json:"batch_number"`
}

func (h *Handler) Reconcile(c echo.Context) error {
	var req reconcileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.Reconcile(c.Request().Context(), req.CommodityID,
		req.FacilityID, req.BatchNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "stock record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetStock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.GetStock(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "stock record not found")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) ListStockByFacility(c echo.Context) error {
	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListStockByFacility(c.Request().Context(), facilityID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListStockByCommodity(c echo.Context) error {
	commodityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid commodity id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListStockByCommodity(c.Request().Context(), commodityID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListLowStock(c echo.Context) error {
	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListLowStock(c.Request().Context(), facilityID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTransactionsByFacility(c echo.Context) error {
	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListTransactionsByFacility(c.Request().Context(), facilityID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
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
