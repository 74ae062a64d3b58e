package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/farm/controller"
	"agriloop/pkg/farm/service"
	"agriloop/pkg/middleware"
)

type farmCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) controller.FarmController { return &farmCtrl{svc} }

type createCropReq struct {
	CropName            string  `json:"crop_name"`
	AreaHectares        float64 `json:"area_hectares"`
	PlantingDate        string  `json:"planting_date"`
	ExpectedHarvestDate string  `json:"expected_harvest_date"`
}

// parseDate accepts 2006-01-02 or RFC 3339; empty means unset.
func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be YYYY-MM-DD", field)
	}
	return t, nil
}

func (h *farmCtrl) ListFarms(c echo.Context) error {
	out, err := h.svc.FarmsByOwner(c.Request().Context(), middleware.Principal(c).Username)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *farmCtrl) CreateFarm(c echo.Context) error {
	var req service.FarmInput
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	f, err := h.svc.AddFarm(c.Request().Context(), middleware.Principal(c).Username, req)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *farmCtrl) GetFarm(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	f, err := h.svc.GetFarm(c.Request().Context(), middleware.Principal(c).Username, id)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *farmCtrl) DeleteFarm(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	if err := h.svc.RemoveFarm(c.Request().Context(), middleware.Principal(c), id); err != nil {
		return middleware.Fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *farmCtrl) ListFarmCrops(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	out, err := h.svc.CropsByFarm(c.Request().Context(), middleware.Principal(c).Username, id)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *farmCtrl) CreateCrop(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	var req createCropReq
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	pd, err := parseDate("planting_date", req.PlantingDate)
	if err != nil {
		return middleware.Fail(c, err)
	}
	hd, err := parseDate("expected_harvest_date", req.ExpectedHarvestDate)
	if err != nil {
		return middleware.Fail(c, err)
	}
	crop, err := h.svc.AddCrop(c.Request().Context(), middleware.Principal(c).Username, id, service.CropInput{
		Name: req.CropName, AreaHectares: req.AreaHectares, PlantingDate: pd, HarvestDate: hd,
	})
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, crop)
}

func (h *farmCtrl) ListCrops(c echo.Context) error {
	ctx := c.Request().Context()
	uid := middleware.Principal(c).Username
	var (
		out []entities.Crop
		err error
	)
	switch c.QueryParam("status") {
	case "":
		out, err = h.svc.CropsByOwner(ctx, uid)
	case string(entities.CropActive):
		out, err = h.svc.ActiveCropsByOwner(ctx, uid)
	default:
		err = apperr.Validation("status filter supports only %q", entities.CropActive)
	}
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *farmCtrl) PatchCrop(c echo.Context) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return middleware.Fail(c, err)
	}
	var body struct {
		Status entities.CropStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return middleware.BadJSON(c)
	}
	crop, err := h.svc.UpdateCropStatus(c.Request().Context(), middleware.Principal(c).Username, id, body.Status)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, crop)
}
