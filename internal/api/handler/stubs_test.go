package handler

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

type stubAccountService struct {
	session *ports.Session
	account *domain.Account
	err     error
}

func (s *stubAccountService) Resolve(_ context.Context, _ string) (*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

func (s *stubAccountService) Session(_ context.Context, _ *domain.Account) (*ports.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubAccountService) ChooseRole(_ context.Context, account *domain.Account, role string) (*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	updated := *account
	updated.Role = role
	return &updated, nil
}

type stubShopService struct {
	shop  *domain.Shop
	shops []*domain.Shop
	err   error
}

func (s *stubShopService) CreateShop(_ context.Context, _ *domain.Account, _ ports.CreateShopInput) (*domain.Shop, error) {
	return s.shop, s.err
}

func (s *stubShopService) UpdateShop(_ context.Context, _ *domain.Account, _ ports.UpdateShopInput) (*domain.Shop, error) {
	return s.shop, s.err
}

func (s *stubShopService) SetTimings(_ context.Context, _ *domain.Account, _, _ string) (*domain.Shop, error) {
	return s.shop, s.err
}

func (s *stubShopService) ToggleOpen(_ context.Context, _ *domain.Account, _ bool) (*domain.Shop, error) {
	return s.shop, s.err
}

func (s *stubShopService) MyShops(_ context.Context, _ *domain.Account) ([]*domain.Shop, error) {
	return s.shops, s.err
}

func (s *stubShopService) GetShop(_ context.Context, _ string) (*domain.Shop, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.shop, nil
}

func (s *stubShopService) Seed(_ context.Context) (int, error) {
	return len(s.shops), s.err
}

type stubDiscoveryService struct {
	shops    []*domain.Shop
	nearby   []ports.NearbyShop
	products []*domain.Product
	err      error

	lastLat, lastLng float64
}

func (s *stubDiscoveryService) ListShops(_ context.Context, _, _ string, _ bool) ([]*domain.Shop, error) {
	return s.shops, s.err
}

func (s *stubDiscoveryService) NearbyShops(_ context.Context, lat, lng float64) ([]ports.NearbyShop, error) {
	s.lastLat, s.lastLng = lat, lng
	return s.nearby, s.err
}

func (s *stubDiscoveryService) SearchProducts(_ context.Context, _, _ string, _ bool) ([]*domain.Product, error) {
	return s.products, s.err
}
