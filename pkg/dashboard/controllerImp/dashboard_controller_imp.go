package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agriloop/pkg/dashboard/controller"
	"agriloop/pkg/dashboard/service"
	"agriloop/pkg/middleware"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type dashboardCtrl struct{ svc service.DashboardService }

func New(svc service.DashboardService) controller.DashboardController { return &dashboardCtrl{svc} }

func (h *dashboardCtrl) Summary(c echo.Context) error {
	s, err := h.svc.UserSummary(c.Request().Context(), middleware.Principal(c).Username)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *dashboardCtrl) Stats(c echo.Context) error {
	s, err := h.svc.AdminStats(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *dashboardCtrl) Export(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.svc.ExportWorkbook(c.Request().Context(), middleware.Principal(c), &buf); err != nil {
		return middleware.Fail(c, err)
	}
	name := fmt.Sprintf("agriloop-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
