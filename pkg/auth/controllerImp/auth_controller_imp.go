package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agriloop/entities"
	"agriloop/pkg/auth/controller"
	"agriloop/pkg/auth/service"
	"agriloop/pkg/auth/token"
	"agriloop/pkg/middleware"
)

type authCtrl struct {
	svc    service.AuthService
	tokens *token.Manager
}

func NewAuthController(svc service.AuthService, tokens *token.Manager) controller.AuthController {
	return &authCtrl{svc: svc, tokens: tokens}
}

type loginResp struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *entities.User `json:"user"`
}

func (h *authCtrl) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	u, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *authCtrl) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return middleware.BadJSON(c)
	}
	u, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return middleware.Fail(c, err)
	}
	tok, exp, err := h.tokens.Issue(u)
	if err != nil {
		return middleware.Fail(c, err)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    tok,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, loginResp{Token: tok, ExpiresAt: exp, User: u})
}

func (h *authCtrl) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.NoContent(http.StatusNoContent)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	u, err := h.svc.GetUser(c.Request().Context(), middleware.Principal(c).Username)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *authCtrl) ListUsers(c echo.Context) error {
	out, err := h.svc.ListUsers(c.Request().Context(), middleware.Principal(c).Username)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *authCtrl) ChangeRole(c echo.Context) error {
	var body struct {
		Role entities.Role `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return middleware.BadJSON(c)
	}
	u, err := h.svc.ChangeRole(c.Request().Context(), middleware.Principal(c).Username, c.Param("username"), body.Role)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *authCtrl) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), middleware.Principal(c).Username, c.Param("username")); err != nil {
		return middleware.Fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
