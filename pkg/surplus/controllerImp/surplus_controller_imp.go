package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/middleware"
	"agriloop/pkg/surplus/controller"
	"agriloop/pkg/surplus/service"
)

type surplusCtrl struct{ svc service.SurplusService }

func New(svc service.SurplusService) controller.SurplusController { return &surplusCtrl{svc} }

type createListingReq struct {
	CropID      uint     `json:"crop_id"`
	QuantityKg  float64  `json:"quantity"`
	HarvestDate string   `json:"harvest_date"`
	UnitPrice   *float64 `json:"unit_price"`
}

func (h *surplusCtrl) Predict(c echo.Context) error {
	var req service.PredictInput
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	p, err := h.svc.Predict(c.Request().Context(), middleware.Principal(c).Username, req)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *surplusCtrl) ListListings(c echo.Context) error {
	out, err := h.svc.Listings(c.Request().Context(), middleware.Principal(c).Username)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *surplusCtrl) CreateListing(c echo.Context) error {
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	hd, err := time.Parse("2006-01-02", req.HarvestDate)
	if err != nil {
		return middleware.Fail(c, apperr.Validation("harvest_date must be YYYY-MM-DD"))
	}
	l, err := h.svc.CreateListing(c.Request().Context(), middleware.Principal(c).Username, service.ListingInput{
		CropID:         req.CropID,
		QuantityKg:     req.QuantityKg,
		HarvestDate:    hd,
		UnitPrice:      req.UnitPrice,
		IdempotencyKey: c.Request().Header.Get(middleware.IdempotencyHeader),
	})
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *surplusCtrl) PatchListing(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	var body struct {
		Status entities.ListingStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return middleware.BadJSON(c)
	}
	l, err := h.svc.UpdateListingStatus(c.Request().Context(), middleware.Principal(c).Username, id, body.Status)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
