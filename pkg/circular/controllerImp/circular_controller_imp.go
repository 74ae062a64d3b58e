package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"agriloop/entities"
	"agriloop/pkg/circular/controller"
	"agriloop/pkg/circular/service"
	"agriloop/pkg/middleware"
)

type circularCtrl struct{ svc service.CircularService }

func New(svc service.CircularService) controller.CircularController { return &circularCtrl{svc} }

// ListPartners returns the directory; ?format=geojson renders it as a
// FeatureCollection of points for map clients.
func (h *circularCtrl) ListPartners(c echo.Context) error {
	out, err := h.svc.Partners(c.Request().Context())
	if err != nil {
		return middleware.Fail(c, err)
	}
	if c.QueryParam("format") == "geojson" {
		return c.JSON(http.StatusOK, partnersGeoJSON(out))
	}
	return c.JSON(http.StatusOK, out)
}

func partnersGeoJSON(partners []entities.Partner) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range partners {
		f := geojson.NewFeature(orb.Point{p.Longitude, p.Latitude})
		f.ID = p.ID
		f.Properties["name"] = p.Name
		f.Properties["type"] = string(p.Type)
		f.Properties["capacity_kg_per_day"] = p.CapacityKgPerDay
		f.Properties["rating"] = p.Rating
		fc.Append(f)
	}
	return fc
}

func (h *circularCtrl) CreatePartner(c echo.Context) error {
	var req service.PartnerInput
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	p, err := h.svc.AddPartner(c.Request().Context(), middleware.Principal(c), req)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *circularCtrl) ListRequests(c echo.Context) error {
	out, err := h.svc.Requests(c.Request().Context(), middleware.Principal(c).Username)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *circularCtrl) CreateRequest(c echo.Context) error {
	var req service.WasteInput
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	r, err := h.svc.CreateRequest(c.Request().Context(), middleware.Principal(c).Username, req)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *circularCtrl) MatchRequest(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	m, err := h.svc.MatchRequest(c.Request().Context(), middleware.Principal(c), id)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *circularCtrl) CompleteRequest(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	r, err := h.svc.CompleteRequest(c.Request().Context(), middleware.Principal(c), id)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, r)
}
