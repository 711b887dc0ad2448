package ports

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// AddProductInput carries the data for creating a product under a shop.
type AddProductInput struct {
	Name        string
	Price       float64
	OfferPrice  float64
	Description string
	Category    string
	Tags        []string
}

// UpdateProductInput is the partial-update payload for a product.
type UpdateProductInput struct {
	Name        *string
	Price       *float64
	OfferPrice  *float64
	IsOnOffer   *bool
	Description *string
	Category    *string
	InStock     *bool
	Tags        *[]string
}

// ProductService implements owner-gated catalog operations. Every mutation
// resolves the product's owning shop and re-validates ownership before
// touching state.
type ProductService interface {
	AddProduct(ctx context.Context, owner *domain.Account, shopID string, input AddProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, owner *domain.Account, productID string, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, owner *domain.Account, productID string) error
	ToggleOffer(ctx context.Context, owner *domain.Account, productID string, isOnOffer bool) (*domain.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.Product, error)
}
