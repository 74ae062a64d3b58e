package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agriloop/pkg/advisory/controller"
	"agriloop/pkg/advisory/service"
	"agriloop/pkg/middleware"
)

type advisoryCtrl struct{ svc service.AdvisoryService }

func New(svc service.AdvisoryService) controller.AdvisoryController { return &advisoryCtrl{svc} }

func (h *advisoryCtrl) Irrigation(c echo.Context) error {
	var req service.RecommendInput
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	req.IdempotencyKey = c.Request().Header.Get(middleware.IdempotencyHeader)
	a, err := h.svc.Recommend(c.Request().Context(), middleware.Principal(c).Username, req)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *advisoryCtrl) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	out, err := h.svc.History(c.Request().Context(), middleware.Principal(c).Username, limit)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
