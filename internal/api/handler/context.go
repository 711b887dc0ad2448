package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dosapp/discovery-api/internal/api/middleware"
	"github.com/dosapp/discovery-api/internal/core/domain"
)

// ctxAccount extracts the account injected by the Auth middleware. Its
// presence proves the middleware ran; a missing account on a protected
// route is a wiring bug, reported as 401 rather than a panic.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, ok := c.Get(middleware.AccountKey).(*domain.Account)
	if !ok || account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return account, nil
}
