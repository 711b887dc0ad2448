package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dosapp/discovery-api/internal/api/metrics"
	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

// ProductService implements owner-gated catalog operations.
type ProductService struct {
	products ports.ProductRepository
	shops    ports.ShopRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewProductService(products ports.ProductRepository, shops ports.ShopRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{
		products: products,
		shops:    shops,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddProduct creates a product under the caller's own shop.
func (s *ProductService) AddProduct(ctx context.Context, owner *domain.Account, shopID string, input ports.AddProductInput) (*domain.Product, error) {
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	// Another owner's shop is reported as absent, not forbidden.
	if shop.OwnerID != owner.ID {
		return nil, domain.ErrShopNotFound
	}
	if !owner.SubscriptionActive(s.now()) {
		return nil, domain.ErrSubscriptionExpired
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if input.OfferPrice != 0 && input.OfferPrice >= input.Price {
		return nil, fmt.Errorf("%w: offer price must be less than price", domain.ErrValidation)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultShopCategory
	}

	now := s.now()
	product := &domain.Product{
		ShopID:      shopID,
		Name:        name,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
		Description: input.Description,
		InStock:     true,
		Category:    category,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	metrics.ProductsCreatedTotal.Inc()

	s.syncSummaryAdd(ctx, shopID, domain.ProductSummary{Name: created.Name, Price: created.Price})
	s.logger.Info().Str("product_id", created.ID).Str("shop_id", shopID).Msg("product added")
	return created, nil
}

// UpdateProduct applies a partial update after re-validating ownership of
// the product's shop.
func (s *ProductService) UpdateProduct(ctx context.Context, owner *domain.Account, productID string, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.resolveOwned(ctx, owner, productID)
	if err != nil {
		return nil, err
	}
	if !owner.SubscriptionActive(s.now()) {
		return nil, domain.ErrSubscriptionExpired
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: product name cannot be empty", domain.ErrValidation)
	}

	// The offer-below-price constraint holds against the effective values
	// after the patch, not just the patched fields.
	price := product.Price
	if input.Price != nil {
		price = *input.Price
	}
	offerPrice := product.OfferPrice
	if input.OfferPrice != nil {
		offerPrice = *input.OfferPrice
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if offerPrice != 0 && offerPrice >= price {
		return nil, fmt.Errorf("%w: offer price must be less than price", domain.ErrValidation)
	}

	updated, err := s.products.Update(ctx, productID, ports.ProductPatch{
		Name:        input.Name,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
		IsOnOffer:   input.IsOnOffer,
		Description: input.Description,
		Category:    input.Category,
		InStock:     input.InStock,
		Tags:        input.Tags,
	})
	if err != nil {
		return nil, err
	}

	if input.Name != nil || input.Price != nil {
		s.syncSummaryRemove(ctx, product.ShopID, product.Name)
		s.syncSummaryAdd(ctx, product.ShopID, domain.ProductSummary{Name: updated.Name, Price: updated.Price})
	}
	return updated, nil
}

// DeleteProduct removes the product. Deletion is allowed even on an expired
// subscription: taking items off the catalog is not a gated write.
func (s *ProductService) DeleteProduct(ctx context.Context, owner *domain.Account, productID string) error {
	product, err := s.resolveOwned(ctx, owner, productID)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	s.syncSummaryRemove(ctx, product.ShopID, product.Name)
	s.logger.Info().Str("product_id", productID).Str("shop_id", product.ShopID).Msg("product deleted")
	return nil
}

func (s *ProductService) ToggleOffer(ctx context.Context, owner *domain.Account, productID string, isOnOffer bool) (*domain.Product, error) {
	if _, err := s.resolveOwned(ctx, owner, productID); err != nil {
		return nil, err
	}
	if !owner.SubscriptionActive(s.now()) {
		return nil, domain.ErrSubscriptionExpired
	}
	return s.products.Update(ctx, productID, ports.ProductPatch{IsOnOffer: &isOnOffer})
}

// ListByShop is public: all products of a shop, newest first.
func (s *ProductService) ListByShop(ctx context.Context, shopID string) ([]*domain.Product, error) {
	return s.products.FindByShop(ctx, shopID)
}

// resolveOwned loads the product and its shop and verifies the caller owns
// that shop. A product under another owner's shop is reported as absent to
// avoid leaking its existence. The shop reference stored on the product is
// never trusted on its own: the shop row is fetched and its owner compared
// against the authenticated identity.
func (s *ProductService) resolveOwned(ctx context.Context, owner *domain.Account, productID string) (*domain.Product, error) {
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shops.FindByID(ctx, product.ShopID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	if shop.OwnerID != owner.ID {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// Summary sync is best effort: the products collection is the source of
// truth, the embedded list only feeds shop text search.
func (s *ProductService) syncSummaryAdd(ctx context.Context, shopID string, summary domain.ProductSummary) {
	if err := s.shops.AddProductSummary(ctx, shopID, summary); err != nil {
		s.logger.Warn().Err(err).Str("shop_id", shopID).Str("name", summary.Name).Msg("product summary not added")
	}
}

func (s *ProductService) syncSummaryRemove(ctx context.Context, shopID, name string) {
	if err := s.shops.RemoveProductSummary(ctx, shopID, name); err != nil {
		s.logger.Warn().Err(err).Str("shop_id", shopID).Str("name", name).Msg("product summary not removed")
	}
}
