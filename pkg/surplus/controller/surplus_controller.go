package controller

import "github.com/labstack/echo/v4"

type SurplusController interface {
	Predict(c echo.Context) error
	ListListings(c echo.Context) error
	CreateListing(c echo.Context) error
	PatchListing(c echo.Context) error
}
