package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dosapp/discovery-api/internal/core/ports"
)

// AccountHandler handles session and role endpoints.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Session handles POST /auth/session. The Auth middleware has already
// resolved (and possibly provisioned) the account, so this only builds the
// session view.
func (h *AccountHandler) Session(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	session, err := h.service.Session(c.Request().Context(), account)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// ChooseRole handles PUT /auth/role.
func (h *AccountHandler) ChooseRole(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req chooseRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.ChooseRole(c.Request().Context(), account, req.Role)
	if err != nil {
		return err
	}

	session, err := h.service.Session(c.Request().Context(), updated)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(session))
}
