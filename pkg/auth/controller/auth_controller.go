package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	Register(c echo.Context) error
	Login(c echo.Context) error
	Logout(c echo.Context) error
	WhoAmI(c echo.Context) error

	ListUsers(c echo.Context) error
	ChangeRole(c echo.Context) error
	DeleteUser(c echo.Context) error
}
