package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dosapp/discovery-api/internal/api/metrics"
	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

// ShopService owns the owner-onboarding lifecycle and all shop writes.
type ShopService struct {
	shops    ports.ShopRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewShopService(shops ports.ShopRepository, accounts ports.AccountRepository, logger zerolog.Logger) *ShopService {
	return &ShopService{
		shops:    shops,
		accounts: accounts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateShop creates the caller's single shop and flips the onboarding flag
// on the owner account. The flag write is best effort: its failure is logged
// and counted but does not roll back the shop.
func (s *ShopService) CreateShop(ctx context.Context, owner *domain.Account, input ports.CreateShopInput) (*domain.Shop, error) {
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if !owner.SubscriptionActive(s.now()) {
		return nil, domain.ErrSubscriptionExpired
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: shop name is required", domain.ErrValidation)
	}

	exists, err := s.shops.ExistsByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateShop
	}

	area, city := input.Area, input.City
	if area == "" || city == "" {
		derivedArea, derivedCity := domain.DeriveAreaCity(input.Address)
		if area == "" {
			area = derivedArea
		}
		if city == "" {
			city = derivedCity
		}
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultShopCategory
	}

	now := s.now()
	shop := &domain.Shop{
		OwnerID:   owner.ID,
		Name:      name,
		Category:  category,
		Area:      area,
		City:      city,
		Location:  domain.NewGeoPoint(input.Lng, input.Lat),
		OpenTime:  input.OpenTime,
		CloseTime: input.CloseTime,
		IsOpen:    true,
		Contact:   domain.Contact{Phone: input.Phone, Address: input.Address},
		Notice:    input.Notice,
		Products:  []domain.ProductSummary{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.shops.Create(ctx, shop)
	if err != nil {
		return nil, err
	}
	metrics.ShopsCreatedTotal.WithLabelValues(created.Category).Inc()

	if err := s.accounts.SetShopProfileComplete(ctx, owner.ID, true); err != nil {
		metrics.ProfileFlagErrorsTotal.Inc()
		s.logger.Error().Err(err).Str("account_id", owner.ID).Str("shop_id", created.ID).
			Msg("shop created but profile flag not persisted")
	}

	s.logger.Info().Str("shop_id", created.ID).Str("owner_id", owner.ID).Msg("shop created")
	return created, nil
}

// UpdateShop applies a partial update to the caller's own shop. Unspecified
// fields keep their stored values.
func (s *ShopService) UpdateShop(ctx context.Context, owner *domain.Account, input ports.UpdateShopInput) (*domain.Shop, error) {
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: shop name cannot be empty", domain.ErrValidation)
	}

	patch := ports.ShopPatch{
		Name:     input.Name,
		Category: input.Category,
		Area:     input.Area,
		City:     input.City,
		Phone:    input.Phone,
		Address:  input.Address,
		Notice:   input.Notice,
		Offer:    input.Offer,
	}
	if input.Lng != nil && input.Lat != nil {
		loc := domain.NewGeoPoint(*input.Lng, *input.Lat)
		patch.Location = &loc
	}

	return s.shops.Update(ctx, owner.ID, patch)
}

// SetTimings requires both fields together.
func (s *ShopService) SetTimings(ctx context.Context, owner *domain.Account, openTime, closeTime string) (*domain.Shop, error) {
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if openTime == "" || closeTime == "" {
		return nil, fmt.Errorf("%w: openTime and closeTime are required", domain.ErrValidation)
	}
	return s.shops.Update(ctx, owner.ID, ports.ShopPatch{OpenTime: &openTime, CloseTime: &closeTime})
}

func (s *ShopService) ToggleOpen(ctx context.Context, owner *domain.Account, isOpen bool) (*domain.Shop, error) {
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}
	return s.shops.Update(ctx, owner.ID, ports.ShopPatch{IsOpen: &isOpen})
}

// MyShops returns the caller's shop as a list; an owner with no shop gets an
// empty list, which the client reads as the setup-pending state.
func (s *ShopService) MyShops(ctx context.Context, owner *domain.Account) ([]*domain.Shop, error) {
	shop, err := s.shops.FindByOwner(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return []*domain.Shop{}, nil
		}
		return nil, fmt.Errorf("my shops: %w", err)
	}
	return []*domain.Shop{shop}, nil
}

func (s *ShopService) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	return s.shops.FindByID(ctx, id)
}

// Seed loads sample shops for local development. It is a no-op when any
// shop already exists, so repeated calls stay idempotent.
func (s *ShopService) Seed(ctx context.Context) (int, error) {
	count, err := s.shops.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seeded := 0
	for _, shop := range sampleShops(s.now()) {
		if _, err := s.shops.Create(ctx, shop); err != nil {
			return seeded, fmt.Errorf("seed: %w", err)
		}
		seeded++
	}
	s.logger.Info().Int("count", seeded).Msg("sample shops seeded")
	return seeded, nil
}

func sampleShops(now time.Time) []*domain.Shop {
	return []*domain.Shop{
		{
			OwnerID:  "seed-owner-1",
			Name:     "APX Gift",
			Category: "Gifts",
			Area:     "Govindpuri",
			City:     "New Delhi",
			Location: domain.NewGeoPoint(77.2625, 28.5355),
			IsOpen:   true,
			Rating:   "4.3",
			Offer:    20,
			Notice:   "Flat 20% off on all gift items today!",
			Contact:  domain.Contact{Phone: "+91 98765 43210", Address: "Gali 5A, Govindpuri, New Delhi"},
			Products: []domain.ProductSummary{
				{Name: "Photo Frame", Price: 299},
				{Name: "Gift Box", Price: 199},
				{Name: "Wall Clock", Price: 499},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			OwnerID:  "seed-owner-2",
			Name:     "Dimons",
			Category: "Furniture",
			Area:     "Govindpuri",
			City:     "New Delhi",
			Location: domain.NewGeoPoint(77.2601, 28.5372),
			IsOpen:   true,
			Rating:   "4.1",
			Notice:   "Weekend sale - up to 15% off",
			Contact:  domain.Contact{Phone: "+91 91234 56789", Address: "Main Road, Govindpuri, New Delhi"},
			Products: []domain.ProductSummary{
				{Name: "Chair", Price: 899},
				{Name: "Dining Table", Price: 4999},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
