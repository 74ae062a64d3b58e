package controller

import "github.com/labstack/echo/v4"

type FarmController interface {
	ListFarms(c echo.Context) error
	CreateFarm(c echo.Context) error
	GetFarm(c echo.Context) error
	DeleteFarm(c echo.Context) error
	ListFarmCrops(c echo.Context) error
	CreateCrop(c echo.Context) error
	ListCrops(c echo.Context) error
	PatchCrop(c echo.Context) error
}
