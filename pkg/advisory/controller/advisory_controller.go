package controller

import "github.com/labstack/echo/v4"

type AdvisoryController interface {
	Irrigation(c echo.Context) error
	History(c echo.Context) error
}
