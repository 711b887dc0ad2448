package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DevOnly blocks the route entirely when the service runs in production.
func DevOnly(production bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if production {
				return echo.NewHTTPError(http.StatusForbidden, "not available in production")
			}
			return next(c)
		}
	}
}
