package ports

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// NearbyShop pairs a shop with its distance from the query origin.
type NearbyShop struct {
	Shop           *domain.Shop
	DistanceMeters float64
}

// DiscoveryService answers "which shops/products match this query".
type DiscoveryService interface {
	// ListShops applies category, text, and offer filters conjunctively.
	ListShops(ctx context.Context, category, query string, offerOnly bool) ([]*domain.Shop, error)
	// NearbyShops returns shops within the fixed radius of the origin,
	// nearest first.
	NearbyShops(ctx context.Context, lat, lng float64) ([]NearbyShop, error)
	// SearchProducts matches product names case-insensitively, optionally
	// scoped to a shop and to on-offer products.
	SearchProducts(ctx context.Context, query, shopID string, offerOnly bool) ([]*domain.Product, error)
}
