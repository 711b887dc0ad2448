package ports

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// CreateShopInput carries all data needed to create the caller's shop.
// Area and city, when empty, are derived from the comma-separated address.
type CreateShopInput struct {
	Name      string
	Category  string
	Area      string
	City      string
	Phone     string
	Address   string
	Notice    string
	OpenTime  string
	CloseTime string
	Lng       float64
	Lat       float64
}

// UpdateShopInput is the partial-update payload: nil fields keep stored
// values.
type UpdateShopInput struct {
	Name     *string
	Category *string
	Area     *string
	City     *string
	Phone    *string
	Address  *string
	Notice   *string
	Offer    *float64
	Lng      *float64
	Lat      *float64
}

// ShopService implements the owner-facing shop lifecycle.
type ShopService interface {
	CreateShop(ctx context.Context, owner *domain.Account, input CreateShopInput) (*domain.Shop, error)
	UpdateShop(ctx context.Context, owner *domain.Account, input UpdateShopInput) (*domain.Shop, error)
	SetTimings(ctx context.Context, owner *domain.Account, openTime, closeTime string) (*domain.Shop, error)
	ToggleOpen(ctx context.Context, owner *domain.Account, isOpen bool) (*domain.Shop, error)
	// MyShops lists the caller's shop(s); at most one in practice.
	MyShops(ctx context.Context, owner *domain.Account) ([]*domain.Shop, error)
	GetShop(ctx context.Context, id string) (*domain.Shop, error)
	// Seed idempotently loads sample shops when the collection is empty.
	Seed(ctx context.Context) (int, error)
}
