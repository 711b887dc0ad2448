package ports

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// ListShopsFilter carries all query parameters for the shop listing path.
// Filters compose conjunctively; empty fields match everything.
type ListShopsFilter struct {
	Category  string // exact match on category
	Query     string // case-insensitive substring over name, area, city, embedded product names
	OfferOnly bool   // restrict to shops with offer > 0
	Limit     int64  // hard cap on returned rows
}

// NearbyFilter carries the parameters for the geospatial path. Results are
// ordered nearest first; the radius boundary is inclusive.
type NearbyFilter struct {
	Lng          float64
	Lat          float64
	RadiusMeters float64
	Limit        int64
}

// ShopPatch is a partial update: nil pointers leave the stored value
// untouched rather than nulling it.
type ShopPatch struct {
	Name      *string
	Category  *string
	Area      *string
	City      *string
	Phone     *string
	Address   *string
	Notice    *string
	Offer     *float64
	OpenTime  *string
	CloseTime *string
	IsOpen    *bool
	Location  *domain.GeoPoint
}

// ShopRepository defines persistence operations for shops.
type ShopRepository interface {
	// Create inserts the shop. A unique index on owner_id guarantees the
	// one-shop-per-owner invariant even under concurrent calls; duplicate
	// key violations surface as domain.ErrDuplicateShop.
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	FindByID(ctx context.Context, id string) (*domain.Shop, error)
	FindByOwner(ctx context.Context, ownerID string) (*domain.Shop, error)
	ExistsByOwner(ctx context.Context, ownerID string) (bool, error)
	// Update applies the patch to the owner's shop and returns the updated
	// document, or domain.ErrShopNotFound when the owner has no shop.
	Update(ctx context.Context, ownerID string, patch ShopPatch) (*domain.Shop, error)
	List(ctx context.Context, filter ListShopsFilter) ([]*domain.Shop, error)
	Nearby(ctx context.Context, filter NearbyFilter) ([]*domain.Shop, error)
	Count(ctx context.Context) (int64, error)
	// AddProductSummary / RemoveProductSummary maintain the denormalized
	// product name list the shop text search matches against.
	AddProductSummary(ctx context.Context, shopID string, summary domain.ProductSummary) error
	RemoveProductSummary(ctx context.Context, shopID, productName string) error
}
