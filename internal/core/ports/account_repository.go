package ports

import (
	"context"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// SetRole changes the account role. Used only for the one-way
	// consumer to owner upgrade.
	SetRole(ctx context.Context, id, role string) error
	// SetShopProfileComplete flips the onboarding flag after shop creation.
	SetShopProfileComplete(ctx context.Context, id string, complete bool) error
}
