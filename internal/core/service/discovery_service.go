package service

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rs/zerolog"

	"github.com/dosapp/discovery-api/internal/api/metrics"
	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

const (
	// NearbyRadiusMeters is the fixed radius for the nearby path. The
	// boundary is inclusive: a shop at exactly this distance is returned.
	NearbyRadiusMeters = 5000

	shopListLimit      = 200
	productSearchLimit = 100
)

// DiscoveryService answers multi-criteria shop and product queries. It is
// read-only and safe to retry.
type DiscoveryService struct {
	shops    ports.ShopRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewDiscoveryService(shops ports.ShopRepository, products ports.ProductRepository, logger zerolog.Logger) *DiscoveryService {
	return &DiscoveryService{shops: shops, products: products, logger: logger}
}

// ListShops applies category, text, and offer filters conjunctively. The
// text filter is a case-insensitive substring match over shop name, area,
// city, and embedded product names.
func (s *DiscoveryService) ListShops(ctx context.Context, category, query string, offerOnly bool) ([]*domain.Shop, error) {
	metrics.SearchesTotal.WithLabelValues("shops").Inc()

	shops, err := s.shops.List(ctx, ports.ListShopsFilter{
		Category:  category,
		Query:     query,
		OfferOnly: offerOnly,
		Limit:     shopListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}

// NearbyShops returns shops within NearbyRadiusMeters of the origin,
// nearest first, each annotated with its distance from the origin.
func (s *DiscoveryService) NearbyShops(ctx context.Context, lat, lng float64) ([]ports.NearbyShop, error) {
	metrics.SearchesTotal.WithLabelValues("nearby").Inc()

	shops, err := s.shops.Nearby(ctx, ports.NearbyFilter{
		Lng:          lng,
		Lat:          lat,
		RadiusMeters: NearbyRadiusMeters,
		Limit:        shopListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby shops: %w", err)
	}

	origin := orb.Point{lng, lat}
	results := make([]ports.NearbyShop, len(shops))
	for i, shop := range shops {
		results[i] = ports.NearbyShop{
			Shop:           shop,
			DistanceMeters: geo.Distance(origin, orb.Point{shop.Location.Lng(), shop.Location.Lat()}),
		}
	}
	return results, nil
}

// SearchProducts matches product names case-insensitively, optionally
// scoped to a shop and to on-offer products.
func (s *DiscoveryService) SearchProducts(ctx context.Context, query, shopID string, offerOnly bool) ([]*domain.Product, error) {
	metrics.SearchesTotal.WithLabelValues("products").Inc()

	products, err := s.products.Search(ctx, ports.SearchProductsFilter{
		Query:     query,
		ShopID:    shopID,
		OfferOnly: offerOnly,
		Limit:     productSearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}
