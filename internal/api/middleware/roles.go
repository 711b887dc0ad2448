package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// RequireOwner rejects requests from accounts that have not adopted the
// owner role. It must run after Auth.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, ok := c.Get(AccountKey).(*domain.Account)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing account")
			}
			if account.Role != domain.RoleOwner {
				return echo.NewHTTPError(http.StatusForbidden, "owner role required")
			}
			return next(c)
		}
	}
}
