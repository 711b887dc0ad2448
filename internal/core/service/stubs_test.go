package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rs/zerolog"

	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubVerifier struct {
	claims *ports.IdentityClaims
	err    error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*ports.IdentityClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	clone := *v.claims
	return &clone, nil
}

type stubAccountRepo struct {
	byExternal map[string]*domain.Account
	byID       map[string]*domain.Account
	seq        int

	createErr    error // if set, Create returns this error
	flagErr      error // if set, SetShopProfileComplete fails
	setRoleCalls int
	raceLoser    bool // simulate losing the provisioning race once
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		byExternal: make(map[string]*domain.Account),
		byID:       make(map[string]*domain.Account),
	}
}

func (r *stubAccountRepo) put(a *domain.Account) *domain.Account {
	if a.ID == "" {
		r.seq++
		a.ID = fmt.Sprintf("acc-%d", r.seq)
	}
	clone := *a
	r.byID[a.ID] = &clone
	if a.ExternalID != "" {
		r.byExternal[a.ExternalID] = &clone
	}
	return &clone
}

func (r *stubAccountRepo) FindByExternalID(_ context.Context, externalID string) (*domain.Account, error) {
	a, ok := r.byExternal[externalID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.raceLoser {
		// A concurrent call inserted the row first; mirror the unique
		// index violation after storing the winner's version.
		r.raceLoser = false
		winner := *account
		winner.Name = "race winner"
		r.put(&winner)
		return nil, domain.ErrAccountExists
	}
	if _, exists := r.byExternal[account.ExternalID]; exists {
		return nil, domain.ErrAccountExists
	}
	stored := r.put(account)
	clone := *stored
	return &clone, nil
}

func (r *stubAccountRepo) SetRole(_ context.Context, id, role string) error {
	r.setRoleCalls++
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Role = role
	return nil
}

func (r *stubAccountRepo) SetShopProfileComplete(_ context.Context, id string, complete bool) error {
	if r.flagErr != nil {
		return r.flagErr
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.ShopProfileComplete = complete
	return nil
}

type stubShopRepo struct {
	byID map[string]*domain.Shop
	seq  int

	existsCalls int
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{byID: make(map[string]*domain.Shop)}
}

func (r *stubShopRepo) put(s *domain.Shop) *domain.Shop {
	if s.ID == "" {
		r.seq++
		s.ID = fmt.Sprintf("shop-%d", r.seq)
	}
	clone := *s
	r.byID[s.ID] = &clone
	return &clone
}

func (r *stubShopRepo) Create(_ context.Context, shop *domain.Shop) (*domain.Shop, error) {
	// Enforce the unique owner_id index.
	for _, s := range r.byID {
		if s.OwnerID == shop.OwnerID {
			return nil, domain.ErrDuplicateShop
		}
	}
	stored := r.put(shop)
	clone := *stored
	return &clone, nil
}

func (r *stubShopRepo) FindByID(_ context.Context, id string) (*domain.Shop, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShopRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Shop, error) {
	for _, s := range r.byID {
		if s.OwnerID == ownerID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrShopNotFound
}

func (r *stubShopRepo) ExistsByOwner(ctx context.Context, ownerID string) (bool, error) {
	r.existsCalls++
	_, err := r.FindByOwner(ctx, ownerID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *stubShopRepo) Update(_ context.Context, ownerID string, patch ports.ShopPatch) (*domain.Shop, error) {
	var target *domain.Shop
	for _, s := range r.byID {
		if s.OwnerID == ownerID {
			target = s
			break
		}
	}
	if target == nil {
		return nil, domain.ErrShopNotFound
	}

	if patch.Name != nil {
		target.Name = *patch.Name
	}
	if patch.Category != nil {
		target.Category = *patch.Category
	}
	if patch.Area != nil {
		target.Area = *patch.Area
	}
	if patch.City != nil {
		target.City = *patch.City
	}
	if patch.Phone != nil {
		target.Contact.Phone = *patch.Phone
	}
	if patch.Address != nil {
		target.Contact.Address = *patch.Address
	}
	if patch.Notice != nil {
		target.Notice = *patch.Notice
	}
	if patch.Offer != nil {
		target.Offer = *patch.Offer
	}
	if patch.OpenTime != nil {
		target.OpenTime = *patch.OpenTime
	}
	if patch.CloseTime != nil {
		target.CloseTime = *patch.CloseTime
	}
	if patch.IsOpen != nil {
		target.IsOpen = *patch.IsOpen
	}
	if patch.Location != nil {
		target.Location = *patch.Location
	}

	clone := *target
	return &clone, nil
}

// List applies the same filters the real Mongo query would use.
func (r *stubShopRepo) List(_ context.Context, f ports.ListShopsFilter) ([]*domain.Shop, error) {
	var matched []*domain.Shop
	for _, s := range r.byID {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.OfferOnly && s.Offer <= 0 {
			continue
		}
		if f.Query != "" && !shopMatchesQuery(s, f.Query) {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func shopMatchesQuery(s *domain.Shop, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Area), q) ||
		strings.Contains(strings.ToLower(s.City), q) {
		return true
	}
	for _, p := range s.Products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
	}
	return false
}

// Nearby mirrors the $nearSphere query: inclusive radius, nearest first.
func (r *stubShopRepo) Nearby(_ context.Context, f ports.NearbyFilter) ([]*domain.Shop, error) {
	origin := orb.Point{f.Lng, f.Lat}
	type scored struct {
		shop *domain.Shop
		dist float64
	}
	var matched []scored
	for _, s := range r.byID {
		d := geo.Distance(origin, orb.Point{s.Location.Lng(), s.Location.Lat()})
		if d <= f.RadiusMeters {
			clone := *s
			matched = append(matched, scored{shop: &clone, dist: d})
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].dist < matched[j].dist })
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	out := make([]*domain.Shop, len(matched))
	for i, m := range matched {
		out[i] = m.shop
	}
	return out, nil
}

func (r *stubShopRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubShopRepo) AddProductSummary(_ context.Context, shopID string, summary domain.ProductSummary) error {
	s, ok := r.byID[shopID]
	if !ok {
		return domain.ErrShopNotFound
	}
	s.Products = append(s.Products, summary)
	return nil
}

func (r *stubShopRepo) RemoveProductSummary(_ context.Context, shopID, productName string) error {
	s, ok := r.byID[shopID]
	if !ok {
		return domain.ErrShopNotFound
	}
	kept := s.Products[:0]
	for _, p := range s.Products {
		if p.Name != productName {
			kept = append(kept, p)
		}
	}
	s.Products = kept
	return nil
}

type stubProductRepo struct {
	byID  map[string]*domain.Product
	order []string // insertion order, used for newest-first listing
	seq   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.seq++
	product.ID = fmt.Sprintf("prod-%d", r.seq)
	clone := *product
	r.byID[product.ID] = &clone
	r.order = append(r.order, product.ID)
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindByShop(_ context.Context, shopID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.byID[r.order[i]]
		if !ok || p.ShopID != shopID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OfferPrice != nil {
		p.OfferPrice = *patch.OfferPrice
	}
	if patch.IsOnOffer != nil {
		p.IsOnOffer = *patch.IsOnOffer
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) Search(_ context.Context, f ports.SearchProductsFilter) ([]*domain.Product, error) {
	var matched []*domain.Product
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.byID[r.order[i]]
		if !ok {
			continue
		}
		if f.ShopID != "" && p.ShopID != f.ShopID {
			continue
		}
		if f.OfferOnly && !p.IsOnOffer {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}
