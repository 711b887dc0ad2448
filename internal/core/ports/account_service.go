package ports

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// Session is the account view returned after identity resolution, including
// the derived onboarding state consumed by client-side routing.
type Session struct {
	Account         *domain.Account
	OnboardingState domain.OnboardingState
}

// AccountService resolves external identities to internal accounts.
type AccountService interface {
	// Resolve verifies the bearer token and returns the matching account,
	// provisioning one on first sight. Idempotent for a given identity.
	Resolve(ctx context.Context, bearerToken string) (*domain.Account, error)
	// Session builds the session view for an already resolved account.
	Session(ctx context.Context, account *domain.Account) (*Session, error)
	// ChooseRole applies the explicit registration choice. Only the
	// consumer to owner transition is permitted.
	ChooseRole(ctx context.Context, account *domain.Account, role string) (*domain.Account, error)
}
