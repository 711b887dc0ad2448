package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Detail
// carries the underlying cause for 5xx errors and is omitted in production.
type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, detail := resolveError(err, log, c)
		if production {
			detail = ""
		}
		_ = c.JSON(code, errorResponse{Message: msg, Detail: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required", ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", ""
	case errors.Is(err, domain.ErrSubscriptionExpired):
		return http.StatusForbidden, "subscription expired", ""
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error(), ""
	case errors.Is(err, domain.ErrDuplicateShop):
		return http.StatusConflict, "shop already exists for this owner", ""
	case errors.Is(err, domain.ErrShopNotFound):
		return http.StatusNotFound, "shop not found", ""
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found", ""
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found", ""
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, "account already exists", ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", err.Error()
}
