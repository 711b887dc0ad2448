package handler

import "github.com/dosapp/discovery-api/internal/core/domain"

// --- Request types ---

type createShopRequest struct {
	Name      string  `json:"name" validate:"required"`
	Category  string  `json:"category"`
	Area      string  `json:"area"`
	City      string  `json:"city"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Notice    string  `json:"notice"`
	OpenTime  string  `json:"openTime"`
	CloseTime string  `json:"closeTime"`
	Lng       float64 `json:"lng"`
	Lat       float64 `json:"lat"`
}

type updateShopRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Area     *string  `json:"area"`
	City     *string  `json:"city"`
	Phone    *string  `json:"phone"`
	Address  *string  `json:"address"`
	Notice   *string  `json:"notice"`
	Offer    *float64 `json:"offer"`
	Lng      *float64 `json:"lng"`
	Lat      *float64 `json:"lat"`
}

type timingsRequest struct {
	OpenTime  string `json:"openTime" validate:"required"`
	CloseTime string `json:"closeTime" validate:"required"`
}

type toggleOpenRequest struct {
	IsOpen *bool `json:"isOpen" validate:"required"`
}

// --- Response types ---

type shopListResponse struct {
	Shops []*domain.Shop `json:"shops"`
}

// nearbyShopResponse embeds the shop and annotates the computed distance
// from the query origin.
type nearbyShopResponse struct {
	*domain.Shop
	DistanceMeters float64 `json:"distanceMeters"`
}

type nearbyShopsResponse struct {
	Shops []nearbyShopResponse `json:"shops"`
}

type seedResponse struct {
	Seeded int `json:"seeded"`
}
