package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

// ShopHandler handles shop discovery and owner-facing lifecycle endpoints.
type ShopHandler struct {
	shops     ports.ShopService
	discovery ports.DiscoveryService
}

func NewShopHandler(shops ports.ShopService, discovery ports.DiscoveryService) *ShopHandler {
	return &ShopHandler{shops: shops, discovery: discovery}
}

// List handles GET /shops. All filters are optional and conjunctive.
func (h *ShopHandler) List(c echo.Context) error {
	offerOnly, _ := strconv.ParseBool(c.QueryParam("offerOnly"))

	shops, err := h.discovery.ListShops(c.Request().Context(),
		c.QueryParam("category"), c.QueryParam("q"), offerOnly)
	if err != nil {
		return err
	}
	if shops == nil {
		shops = []*domain.Shop{}
	}

	return c.JSON(http.StatusOK, shopListResponse{Shops: shops})
}

// Nearby handles GET /shops/nearby. Both coordinates are required.
func (h *ShopHandler) Nearby(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lng are required")
	}

	nearby, err := h.discovery.NearbyShops(c.Request().Context(), lat, lng)
	if err != nil {
		return err
	}

	items := make([]nearbyShopResponse, len(nearby))
	for i, n := range nearby {
		items[i] = nearbyShopResponse{Shop: n.Shop, DistanceMeters: n.DistanceMeters}
	}
	return c.JSON(http.StatusOK, nearbyShopsResponse{Shops: items})
}

// Get handles GET /shops/:id.
func (h *ShopHandler) Get(c echo.Context) error {
	shop, err := h.shops.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}

// Create handles POST /shops.
func (h *ShopHandler) Create(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shop, err := h.shops.CreateShop(c.Request().Context(), account, toCreateShopInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, shop)
}

// Update handles PUT /shops/update. Absent fields keep their stored values.
func (h *ShopHandler) Update(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req updateShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	shop, err := h.shops.UpdateShop(c.Request().Context(), account, toUpdateShopInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shop)
}

// Timings handles PUT /shops/timings.
func (h *ShopHandler) Timings(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req timingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shop, err := h.shops.SetTimings(c.Request().Context(), account, req.OpenTime, req.CloseTime)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shop)
}

// ToggleOpen handles PUT /shops/toggle-open.
func (h *ShopHandler) ToggleOpen(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req toggleOpenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.IsOpen == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isopen is required")
	}

	shop, err := h.shops.ToggleOpen(c.Request().Context(), account, *req.IsOpen)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shop)
}

// My handles GET /shops/my. Owners without a shop get an empty list,
// not a 404, so the client can branch into shop setup.
func (h *ShopHandler) My(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	shops, err := h.shops.MyShops(c.Request().Context(), account)
	if err != nil {
		return err
	}
	if shops == nil {
		shops = []*domain.Shop{}
	}

	return c.JSON(http.StatusOK, shopListResponse{Shops: shops})
}

// Seed handles GET /shops/seed. The route is mounted behind DevOnly.
func (h *ShopHandler) Seed(c echo.Context) error {
	count, err := h.shops.Seed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seedResponse{Seeded: count})
}
