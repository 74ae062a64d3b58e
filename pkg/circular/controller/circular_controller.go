package controller

import "github.com/labstack/echo/v4"

type CircularController interface {
	ListPartners(c echo.Context) error
	CreatePartner(c echo.Context) error
	ListRequests(c echo.Context) error
	CreateRequest(c echo.Context) error
	MatchRequest(c echo.Context) error
	CompleteRequest(c echo.Context) error
}
