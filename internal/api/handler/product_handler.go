package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

// ProductHandler handles catalog endpoints, both the public read side and
// the owner-gated write side.
type ProductHandler struct {
	products  ports.ProductService
	discovery ports.DiscoveryService
}

func NewProductHandler(products ports.ProductService, discovery ports.DiscoveryService) *ProductHandler {
	return &ProductHandler{products: products, discovery: discovery}
}

// Search handles GET /products/search.
func (h *ProductHandler) Search(c echo.Context) error {
	offerOnly, _ := strconv.ParseBool(c.QueryParam("offerOnly"))

	products, err := h.discovery.SearchProducts(c.Request().Context(),
		c.QueryParam("q"), c.QueryParam("shopId"), offerOnly)
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}

	return c.JSON(http.StatusOK, products)
}

// ListByShop handles GET /products/shop/:shopId.
func (h *ProductHandler) ListByShop(c echo.Context) error {
	products, err := h.products.ListByShop(c.Request().Context(), c.Param("shopId"))
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}

	return c.JSON(http.StatusOK, products)
}

// Add handles POST /products/shop/:shopId.
func (h *ProductHandler) Add(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.AddProduct(c.Request().Context(), account, c.Param("shopId"), toAddProductInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.products.UpdateProduct(c.Request().Context(), account, c.Param("id"), toUpdateProductInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	if err := h.products.DeleteProduct(c.Request().Context(), account, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleOffer handles PATCH /products/:id/offer.
func (h *ProductHandler) ToggleOffer(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req toggleOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.IsOnOffer == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isonoffer is required")
	}

	product, err := h.products.ToggleOffer(c.Request().Context(), account, c.Param("id"), *req.IsOnOffer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}
