package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newShopService(shops *stubShopRepo, accounts *stubAccountRepo) *ShopService {
	svc := NewShopService(shops, accounts, discardLogger)
	svc.now = func() time.Time { return testNow }
	return svc
}

func activeOwner(accounts *stubAccountRepo) *domain.Account {
	return accounts.put(&domain.Account{
		ExternalID:         "uid-owner",
		Email:              "owner@example.com",
		Role:               domain.RoleOwner,
		SubscriptionPlan:   "free",
		SubscriptionExpiry: testNow.Add(24 * time.Hour),
	})
}

func giftShopInput() ports.CreateShopInput {
	return ports.CreateShopInput{
		Name:    "APX Gift",
		Phone:   "+91 98765 43210",
		Address: "Gali 5A, Govindpuri, New Delhi, 110019",
		Lng:     77.2625,
		Lat:     28.5355,
	}
}

// ---------------------------------------------------------------------------
// CreateShop
// ---------------------------------------------------------------------------

func TestShopService_Create_Success(t *testing.T) {
	shops := newStubShopRepo()
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(shops, accounts)

	shop, err := svc.CreateShop(context.Background(), owner, giftShopInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shop.ID == "" {
		t.Error("created shop must have an id")
	}
	if shop.OwnerID != owner.ID {
		t.Errorf("expected owner %q, got %q", owner.ID, shop.OwnerID)
	}
	if !shop.IsOpen {
		t.Error("new shop must start open")
	}
	if shop.Category != domain.DefaultShopCategory {
		t.Errorf("missing category must default to %q, got %q", domain.DefaultShopCategory, shop.Category)
	}
	if shop.Location.Lng() != 77.2625 || shop.Location.Lat() != 28.5355 {
		t.Errorf("location mismatch: %v", shop.Location.Coordinates)
	}
}

func TestShopService_Create_DerivesAreaCityFromAddress(t *testing.T) {
	shops := newStubShopRepo()
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(shops, accounts)

	shop, err := svc.CreateShop(context.Background(), owner, giftShopInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.Area != "Govindpuri" {
		t.Errorf("expected derived area %q, got %q", "Govindpuri", shop.Area)
	}
	if shop.City != "New Delhi" {
		t.Errorf("expected derived city %q, got %q", "New Delhi", shop.City)
	}
}

func TestShopService_Create_ExplicitAreaCityWins(t *testing.T) {
	shops := newStubShopRepo()
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(shops, accounts)

	input := giftShopInput()
	input.Area = "Kalkaji"
	input.City = "Delhi"
	shop, err := svc.CreateShop(context.Background(), owner, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.Area != "Kalkaji" || shop.City != "Delhi" {
		t.Errorf("explicit area/city must not be overridden, got %q/%q", shop.Area, shop.City)
	}
}

func TestShopService_Create_SecondShopRejected(t *testing.T) {
	shops := newStubShopRepo()
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(shops, accounts)

	if _, err := svc.CreateShop(context.Background(), owner, giftShopInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateShop(context.Background(), owner, giftShopInput())
	if !errors.Is(err, domain.ErrDuplicateShop) {
		t.Fatalf("expected ErrDuplicateShop, got %v", err)
	}
	if len(shops.byID) != 1 {
		t.Errorf("expected 1 stored shop, got %d", len(shops.byID))
	}
}

func TestShopService_Create_ConsumerForbidden(t *testing.T) {
	accounts := newStubAccountRepo()
	consumer := accounts.put(&domain.Account{Role: domain.RoleConsumer, SubscriptionExpiry: testNow.Add(time.Hour)})
	svc := newShopService(newStubShopRepo(), accounts)

	_, err := svc.CreateShop(context.Background(), consumer, giftShopInput())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestShopService_Create_ExpiredSubscription(t *testing.T) {
	accounts := newStubAccountRepo()
	expired := accounts.put(&domain.Account{Role: domain.RoleOwner, SubscriptionExpiry: testNow.Add(-time.Hour)})
	svc := newShopService(newStubShopRepo(), accounts)

	_, err := svc.CreateShop(context.Background(), expired, giftShopInput())
	if !errors.Is(err, domain.ErrSubscriptionExpired) {
		t.Fatalf("expected ErrSubscriptionExpired, got %v", err)
	}
}

func TestShopService_Create_BlankName(t *testing.T) {
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(newStubShopRepo(), accounts)

	input := giftShopInput()
	input.Name = "   "
	_, err := svc.CreateShop(context.Background(), owner, input)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestShopService_Create_SetsProfileFlag(t *testing.T) {
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(newStubShopRepo(), accounts)

	if _, err := svc.CreateShop(context.Background(), owner, giftShopInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !accounts.byID[owner.ID].ShopProfileComplete {
		t.Error("profile flag must be set after shop creation")
	}
}

func TestShopService_Create_ProfileFlagFailureDoesNotRollBack(t *testing.T) {
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	accounts.flagErr = errors.New("write concern timeout")
	shops := newStubShopRepo()
	svc := newShopService(shops, accounts)

	shop, err := svc.CreateShop(context.Background(), owner, giftShopInput())
	if err != nil {
		t.Fatalf("flag failure must not fail the create: %v", err)
	}
	if _, ok := shops.byID[shop.ID]; !ok {
		t.Error("shop must remain persisted despite flag failure")
	}
}

// ---------------------------------------------------------------------------
// Updates
// ---------------------------------------------------------------------------

func TestShopService_Update_PartialPatch(t *testing.T) {
	shops := newStubShopRepo()
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(shops, accounts)
	if _, err := svc.CreateShop(context.Background(), owner, giftShopInput()); err != nil {
		t.Fatalf("setup: %v", err)
	}

	notice := "Closed for Holi"
	offer := 15.0
	shop, err := svc.UpdateShop(context.Background(), owner, ports.UpdateShopInput{Notice: &notice, Offer: &offer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.Notice != "Closed for Holi" || shop.Offer != 15 {
		t.Errorf("patched fields not applied: %q / %v", shop.Notice, shop.Offer)
	}
	if shop.Name != "APX Gift" {
		t.Errorf("unpatched fields must survive, got name %q", shop.Name)
	}
}

func TestShopService_Update_LocationNeedsBothCoordinates(t *testing.T) {
	shops := newStubShopRepo()
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(shops, accounts)
	if _, err := svc.CreateShop(context.Background(), owner, giftShopInput()); err != nil {
		t.Fatalf("setup: %v", err)
	}

	lng := 78.0
	shop, err := svc.UpdateShop(context.Background(), owner, ports.UpdateShopInput{Lng: &lng})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.Location.Lng() != 77.2625 {
		t.Errorf("lone coordinate must not move the shop, got lng %v", shop.Location.Lng())
	}
}

func TestShopService_SetTimings_RequiresBoth(t *testing.T) {
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(newStubShopRepo(), accounts)

	_, err := svc.SetTimings(context.Background(), owner, "09:00", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestShopService_ToggleOpen(t *testing.T) {
	shops := newStubShopRepo()
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(shops, accounts)
	if _, err := svc.CreateShop(context.Background(), owner, giftShopInput()); err != nil {
		t.Fatalf("setup: %v", err)
	}

	shop, err := svc.ToggleOpen(context.Background(), owner, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.IsOpen {
		t.Error("shop must be closed after toggle")
	}
}

// ---------------------------------------------------------------------------
// MyShops / Seed
// ---------------------------------------------------------------------------

func TestShopService_MyShops_EmptyWithoutShop(t *testing.T) {
	accounts := newStubAccountRepo()
	owner := activeOwner(accounts)
	svc := newShopService(newStubShopRepo(), accounts)

	shops, err := svc.MyShops(context.Background(), owner)
	if err != nil {
		t.Fatalf("missing shop must not be an error: %v", err)
	}
	if len(shops) != 0 {
		t.Errorf("expected empty list, got %d", len(shops))
	}
}

func TestShopService_Seed_Idempotent(t *testing.T) {
	shops := newStubShopRepo()
	svc := newShopService(shops, newStubAccountRepo())

	first, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 2 {
		t.Errorf("expected 2 seeded shops, got %d", first)
	}

	second, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != 0 {
		t.Errorf("repeat seed must be a no-op, got %d", second)
	}
	if len(shops.byID) != 2 {
		t.Errorf("expected 2 stored shops, got %d", len(shops.byID))
	}
}
