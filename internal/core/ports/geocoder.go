package ports

import "context"

// Location is a resolved human-readable area/city pair.
type Location struct {
	Area string `json:"area"`
	City string `json:"city"`
}

// Geocoder resolves coordinates to an area/city pair. The provider behind
// it is an external collaborator with its own bounded timeout.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (*Location, error)
}
