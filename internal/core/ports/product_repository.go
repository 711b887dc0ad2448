package ports

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// SearchProductsFilter carries the parameters for the product search path.
type SearchProductsFilter struct {
	Query     string // case-insensitive substring on product name
	ShopID    string // optional scope to a single shop
	OfferOnly bool   // restrict to products flagged on offer
	Limit     int64  // hard cap on returned rows
}

// ProductPatch is a partial update: nil pointers keep stored values.
type ProductPatch struct {
	Name        *string
	Price       *float64
	OfferPrice  *float64
	IsOnOffer   *bool
	Description *string
	Category    *string
	InStock     *bool
	Tags        *[]string
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByShop returns all products of a shop, newest first.
	FindByShop(ctx context.Context, shopID string) ([]*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter SearchProductsFilter) ([]*domain.Product, error)
}
