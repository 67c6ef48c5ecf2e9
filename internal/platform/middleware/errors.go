package middleware

import (
	"github.com/labstack/echo/v4"
)

// errorJSON writes the {"error": msg} body the API uses for every failure.
func errorJSON(c echo.Context, code int, msg string) error {
	if c.Response().Committed {
		return nil
	}
	return c.JSON(code, map[string]string{"error": msg})
}
