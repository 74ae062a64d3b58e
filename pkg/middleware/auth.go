package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/auth/token"
)

// TokenCookie carries the session token for browser clients.
const TokenCookie = "AGRILOOP_TOKEN"

// UserLookup resolves the user named in a token so role changes and deletions
// take effect on the next request.
type UserLookup interface {
	GetUser(ctx context.Context, username string) (*entities.User, error)
}

// Auth accepts "Authorization: Bearer <token>" or the session cookie and
// stores the caller under "uid" and "role".
func Auth(tokens *token.Manager, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
			if raw == "" {
				if ck, err := c.Cookie(TokenCookie); err == nil {
					raw = ck.Value
				}
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			u, err := users.GetUser(c.Request().Context(), claims.Username)
			if errors.Is(err, apperr.ErrUserNotFound) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "account no longer exists"})
			}
			if err != nil {
				return Fail(c, err)
			}
			c.Set("uid", u.Username)
			c.Set("role", u.Role)
			return next(c)
		}
	}
}

// Require rejects callers whose role lacks cap. It must run after Auth.
func Require(cap entities.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Principal(c).Can(cap) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required", "kind": "permission_denied"})
			}
			return next(c)
		}
	}
}

// Principal returns the caller stored by Auth.
func Principal(c echo.Context) entities.Principal {
	uid, _ := c.Get("uid").(string)
	role, _ := c.Get("role").(entities.Role)
	return entities.Principal{Username: uid, Role: role}
}
