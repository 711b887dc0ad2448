package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dosapp/discovery-api/internal/core/ports"
)

// LocationHandler exposes reverse geocoding for the shop setup flow.
type LocationHandler struct {
	geocoder ports.Geocoder
}

func NewLocationHandler(geocoder ports.Geocoder) *LocationHandler {
	return &LocationHandler{geocoder: geocoder}
}

// Reverse handles GET /location/reverse.
func (h *LocationHandler) Reverse(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lng are required")
	}

	location, err := h.geocoder.Reverse(c.Request().Context(), lat, lng)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "reverse geocoding unavailable")
	}

	return c.JSON(http.StatusOK, location)
}
