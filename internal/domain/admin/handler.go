package admin

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
	readGroup.GET("/counties", h.ListCounties)
	readGroup.GET("/counties/:id", h.GetCounty)
	readGroup.GET("/counties/:id/subcounties", h.ListSubCounties)
	readGroup.GET("/subcounties/:id", h.GetSubCounty)
	readGroup.GET("/subcounties/:id/wards", h.ListWards)
	readGroup.GET("/wards/:id", h.GetWard)
	readGroup.GET("/wards/:id/county", h.GetCountyForWard)
	readGroup.GET("/wards/:id/facilities", h.ListFacilitiesByWard)
	readGroup.GET("/wards/:id/community-units", h.ListCommunityUnits)
	readGroup.GET("/facilities", h.ListFacilities)
	readGroup.GET("/facilities/:id", h.GetFacility)
	readGroup.GET("/community-units/:id", h.GetCommunityUnit)

	// Hierarchy maintenance is restricted to county-level officers.
	writeGroup := api.Group("", auth.RequireRole(auth.RolePublicHealthOfficer))
	writeGroup.POST("/counties", h.CreateCounty)
	writeGroup.PUT("/counties/:id", h.UpdateCounty)
	writeGroup.POST("/counties/:id/subcounties", h.CreateSubCounty)
	writeGroup.PUT("/subcounties/:id", h.UpdateSubCounty)
	writeGroup.POST("/subcounties/:id/wards", h.CreateWard)
	writeGroup.PUT("/wards/:id", h.UpdateWard)
	writeGroup.POST("/facilities", h.CreateFacility)
	writeGroup.PUT("/facilities/:id", h.UpdateFacility)
	writeGroup.POST("/community-units", h.CreateCommunityUnit)
	writeGroup.PUT("/community-units/:id", h.UpdateCommunityUnit)
}

// -- County Handlers --

func (h *Handler) CreateCounty(c echo.Context) error {
	var county County
	if err := c.Bind(&county); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCounty(c.Request().Context(), &county); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, county)
}

func (h *Handler) GetCounty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	county, err := h.svc.GetCounty(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "county not found")
	}
	return c.JSON(http.StatusOK, county)
}

func (h *Handler) ListCounties(c echo.Context) error {
	if code := c.QueryParam("code"); code != "" {
		county, err := h.svc.GetCountyByCode(c.Request().Context(), code)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "county not found")
		}
		return c.JSON(http.StatusOK, county)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCounties(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateCounty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var county County
	if err := c.Bind(&county); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	county.ID = id
	if err := h.svc.UpdateCounty(c.Request().Context(), &county); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, county)
}

// -- SubCounty Handlers --

func (h *Handler) CreateSubCounty(c echo.Context) error {
	countyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid county id")
	}
	var sc SubCounty
	if err := c.Bind(&sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sc.CountyID = countyID
	if err := h.svc.CreateSubCounty(c.Request().Context(), &sc); err != nil {
		if errors.Is(err, ErrParentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sc)
}

func (h *Handler) GetSubCounty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sc, err := h.svc.GetSubCounty(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "subcounty not found")
	}
	return c.JSON(http.StatusOK, sc)
}

func (h *Handler) ListSubCounties(c echo.Context) error {
	countyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid county id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListSubCounties(c.Request().Context(), countyID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateSubCounty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sc SubCounty
	if err := c.Bind(&sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sc.ID = id
	if err := h.svc.UpdateSubCounty(c.Request().Context(), &sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sc)
}

// -- Ward Handlers --

func (h *Handler) CreateWard(c echo.Context) error {
	subcountyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subcounty id")
	}
	var w Ward
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w.SubCountyID = subcountyID
	if err := h.svc.CreateWard(c.Request().Context(), &w); err != nil {
		if errors.Is(err, ErrParentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *Handler) GetWard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.svc.GetWard(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "ward not found")
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) GetCountyForWard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	county, err := h.svc.CountyForWard(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "ward not found")
	}
	return c.JSON(http.StatusOK, county)
}

func (h *Handler) ListWards(c echo.Context) error {
	subcountyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subcounty id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListWards(c.Request().Context(), subcountyID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateWard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var w Ward
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w.ID = id
	if err := h.svc.UpdateWard(c.Request().Context(), &w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, w)
}

// -- Facility Handlers --

func (h *Handler) CreateFacility(c echo.Context) error {
	var f Facility
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateFacility(c.Request().Context(), &f); err != nil {
		if errors.Is(err, ErrParentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) GetFacility(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	f, err := h.svc.GetFacility(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "facility not found")
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) ListFacilities(c echo.Context) error {
	if code := c.QueryParam("code"); code != "" {
		f, err := h.svc.GetFacilityByCode(c.Request().Context(), code)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "facility not found")
		}
		return c.JSON(http.StatusOK, f)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListFacilities(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListFacilitiesByWard(c echo.Context) error {
	wardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ward id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListFacilitiesByWard(c.Request().Context(), wardID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateFacility(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var f Facility
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f.ID = id
	if err := h.svc.UpdateFacility(c.Request().Context(), &f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, f)
}

// -- Community Unit Handlers --

func (h *Handler) CreateCommunityUnit(c echo.Context) error {
	var cu CommunityUnit
	if err := c.Bind(&cu); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCommunityUnit(c.Request().Context(), &cu); err != nil {
		if errors.Is(err, ErrParentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cu)
}

func (h *Handler) GetCommunityUnit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cu, err := h.svc.GetCommunityUnit(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "community unit not found")
	}
	return c.JSON(http.StatusOK, cu)
}

func (h *Handler) ListCommunityUnits(c echo.Context) error {
	wardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ward id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCommunityUnitsByWard(c.Request().Context(), wardID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateCommunityUnit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cu CommunityUnit
	if err := c.Bind(&cu); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cu.ID = id
	if err := h.svc.UpdateCommunityUnit(c.Request().Context(), &cu); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cu)
}
