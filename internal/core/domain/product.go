package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is one catalog item referencing its shop by id. A lightweight
// ProductSummary copy also lives on the shop document (see Shop.Products).
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ShopID      string    `json:"shopId" bson:"shop_id"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	OfferPrice  float64   `json:"offerPrice,omitempty" bson:"offer_price,omitempty"`
	IsOnOffer   bool      `json:"isOnOffer" bson:"is_on_offer"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	InStock     bool      `json:"inStock" bson:"in_stock"`
	Category    string    `json:"category" bson:"category"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
