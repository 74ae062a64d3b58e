package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"agriloop/pkg/apperr"
)

// IdempotencyHeader lets clients retry creation requests without duplicates.
const IdempotencyHeader = "Idempotency-Key"

// Fail writes err as {"error", "kind"} with the status for its kind.
func Fail(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	body := map[string]string{"error": err.Error()}
	if k := apperr.KindOf(err); k != "" {
		body["kind"] = string(k)
	} else {
		c.Logger().Error(err)
		body["error"] = "internal error"
	}
	return c.JSON(status, body)
}

// ParamID parses a positive numeric path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid %s %q", name, c.Param(name))
	}
	return uint(id), nil
}

// BadJSON is returned when a request body does not decode.
func BadJSON(c echo.Context) error {
	return Fail(c, apperr.Validation("bad json"))
}
