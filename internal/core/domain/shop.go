package domain

import (
	"errors"
	"strings"
	"time"
)

const DefaultShopCategory = "General"

var ErrShopNotFound = errors.New("shop not found")
var ErrDuplicateShop = errors.New("shop already exists for this owner")
var ErrValidation = errors.New("validation failed")

// GeoPoint is a GeoJSON point stored as [lng, lat] so Mongo's 2dsphere
// index can serve nearest-neighbor queries.
type GeoPoint struct {
	Type        string     `json:"type" bson:"type"`
	Coordinates [2]float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from longitude and latitude.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Contact holds the shop's public contact details.
type Contact struct {
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// ProductSummary is the denormalized name/price entry embedded on the shop
// document. Shop text search matches against these names, so product writes
// keep the list in sync with the products collection.
type ProductSummary struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// Shop is one storefront profile owned by exactly one owner account.
type Shop struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	OwnerID   string           `json:"ownerId" bson:"owner_id"`
	Name      string           `json:"name" bson:"name"`
	Category  string           `json:"category" bson:"category"`
	Area      string           `json:"area" bson:"area"`
	City      string           `json:"city" bson:"city"`
	Location  GeoPoint         `json:"location" bson:"location"`
	OpenTime  string           `json:"openTime,omitempty" bson:"open_time,omitempty"`
	CloseTime string           `json:"closeTime,omitempty" bson:"close_time,omitempty"`
	IsOpen    bool             `json:"isOpen" bson:"is_open"`
	Contact   Contact          `json:"contact" bson:"contact"`
	Offer     float64          `json:"offer" bson:"offer"`
	Notice    string           `json:"notice,omitempty" bson:"notice,omitempty"`
	Rating    string           `json:"rating,omitempty" bson:"rating,omitempty"`
	Products  []ProductSummary `json:"products" bson:"products"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// DeriveAreaCity extracts area and city from a comma-separated address
// ("Street, Area, City"): area is the third-from-last segment, city the
// second-from-last. Shorter addresses fall back to the first and last
// segments, and an empty address yields the literal defaults.
func DeriveAreaCity(address string) (area, city string) {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	// Drop a trailing empty segment from addresses ending with a comma.
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	switch {
	case len(parts) >= 3:
		return parts[len(parts)-3], parts[len(parts)-2]
	case len(parts) == 2:
		return parts[0], parts[1]
	case len(parts) == 1 && parts[0] != "":
		return parts[0], parts[0]
	default:
		return "General", "Unknown"
	}
}
