package domain

import (
	"errors"
	"time"
)

const (
	RoleConsumer = "consumer"
	RoleOwner    = "owner"
)

// DefaultSubscriptionPeriod is granted to every newly provisioned account.
const DefaultSubscriptionPeriod = 30 * 24 * time.Hour

var ErrUnauthenticated = errors.New("authentication required")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrSubscriptionExpired = errors.New("subscription expired")

// Account is the internal identity record linked to an external
// authentication subject.
type Account struct {
	ID                  string    `json:"id" bson:"_id,omitempty"`
	ExternalID          string    `json:"externalId" bson:"external_id,omitempty"`
	Email               string    `json:"email" bson:"email"`
	Name                string    `json:"name" bson:"name"`
	Photo               string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Phone               string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Role                string    `json:"role" bson:"role"`
	SubscriptionPlan    string    `json:"subscriptionPlan" bson:"subscription_plan"`
	SubscriptionExpiry  time.Time `json:"subscriptionExpiry" bson:"subscription_expiry"`
	ShopProfileComplete bool      `json:"shopProfileComplete" bson:"shop_profile_complete"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at"`
}

// SubscriptionActive reports whether the account may still perform
// subscription-gated writes at the given instant.
func (a *Account) SubscriptionActive(now time.Time) bool {
	return !a.SubscriptionExpiry.Before(now)
}

// OnboardingState is the derived shop-setup state used for owner routing.
type OnboardingState string

const (
	OnboardingNoShop          OnboardingState = "no_shop"
	OnboardingShopCreated     OnboardingState = "shop_created"
	OnboardingProfileComplete OnboardingState = "profile_complete"
)

// DeriveOnboardingState computes the lifecycle state from the account and
// whether a shop row exists. There is no stored state field.
func DeriveOnboardingState(a *Account, hasShop bool) OnboardingState {
	switch {
	case !hasShop:
		return OnboardingNoShop
	case a.ShopProfileComplete:
		return OnboardingProfileComplete
	default:
		return OnboardingShopCreated
	}
}
