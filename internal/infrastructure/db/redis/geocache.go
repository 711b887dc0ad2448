package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dosapp/discovery-api/internal/api/metrics"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

const geocodeTTL = 24 * time.Hour

// GeocodeCache wraps a Geocoder with a Redis-backed cache. Coordinates are
// rounded to four decimals (~11 m) so nearby lookups share an entry.
// Key format: geocode:<lat>:<lng>
type GeocodeCache struct {
	client *redis.Client
	next   ports.Geocoder
}

// NewGeocodeCache creates a GeocodeCache in front of the given Geocoder.
func NewGeocodeCache(client *redis.Client, next ports.Geocoder) *GeocodeCache {
	return &GeocodeCache{client: client, next: next}
}

// Reverse returns a cached area/city pair when available, consulting the
// upstream geocoder on a miss. Cache failures degrade to the upstream call.
func (g *GeocodeCache) Reverse(ctx context.Context, lat, lng float64) (*ports.Location, error) {
	key := g.key(lat, lng)

	cached, err := g.client.Get(ctx, key).Result()
	if err == nil {
		var loc ports.Location
		if jsonErr := json.Unmarshal([]byte(cached), &loc); jsonErr == nil {
			metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
			return &loc, nil
		}
	}
	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()

	loc, err := g.next.Reverse(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(loc); jsonErr == nil {
		_ = g.client.Set(ctx, key, payload, geocodeTTL).Err()
	}
	return loc, nil
}

func (g *GeocodeCache) key(lat, lng float64) string {
	return fmt.Sprintf("geocode:%.4f:%.4f", lat, lng)
}
