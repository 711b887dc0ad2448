package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dosapp/discovery-api/internal/api/metrics"
	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

// AccountService resolves external identities to accounts, provisioning
// them lazily on first sight.
type AccountService struct {
	verifier ports.IdentityVerifier
	accounts ports.AccountRepository
	shops    ports.ShopRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAccountService(verifier ports.IdentityVerifier, accounts ports.AccountRepository, shops ports.ShopRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{
		verifier: verifier,
		accounts: accounts,
		shops:    shops,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Resolve verifies the bearer token and maps it to an account. Verification
// failures never retry: the caller gets ErrUnauthenticated immediately.
func (s *AccountService) Resolve(ctx context.Context, bearerToken string) (*domain.Account, error) {
	claims, err := s.verifier.Verify(ctx, bearerToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("identity verification failed")
		return nil, domain.ErrUnauthenticated
	}

	account, err := s.accounts.FindByExternalID(ctx, claims.ExternalID)
	if err == nil {
		return reconcile(account, claims), nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	created, err := s.accounts.Create(ctx, s.provision(claims))
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			// Lost a provisioning race; the winner's row is authoritative.
			return s.accounts.FindByExternalID(ctx, claims.ExternalID)
		}
		return nil, fmt.Errorf("provision account: %w", err)
	}

	metrics.AccountsProvisionedTotal.Inc()
	s.logger.Info().Str("external_id", claims.ExternalID).Str("account_id", created.ID).Msg("account provisioned")
	return created, nil
}

// Session builds the account view with the derived onboarding state.
func (s *AccountService) Session(ctx context.Context, account *domain.Account) (*ports.Session, error) {
	hasShop := false
	if account.Role == domain.RoleOwner {
		exists, err := s.shops.ExistsByOwner(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		hasShop = exists
	}
	return &ports.Session{
		Account:         account,
		OnboardingState: domain.DeriveOnboardingState(account, hasShop),
	}, nil
}

// ChooseRole applies the explicit registration choice. The upgrade is
// one-way: an owner can never return to consumer.
func (s *AccountService) ChooseRole(ctx context.Context, account *domain.Account, role string) (*domain.Account, error) {
	if role != domain.RoleConsumer && role != domain.RoleOwner {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	if account.Role == role {
		return account, nil
	}
	if account.Role == domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	if err := s.accounts.SetRole(ctx, account.ID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	s.logger.Info().Str("account_id", account.ID).Str("role", role).Msg("role upgraded")

	updated := *account
	updated.Role = role
	return &updated, nil
}

// provision builds the initial account row for a never-seen identity.
func (s *AccountService) provision(claims *ports.IdentityClaims) *domain.Account {
	now := s.now()

	email := claims.Email
	if email == "" {
		// Some providers omit the email claim (phone sign-in).
		email = claims.ExternalID + "@users.noreply.local"
	}
	name := claims.Name
	if name == "" {
		name = email
	}

	return &domain.Account{
		ExternalID:         claims.ExternalID,
		Email:              email,
		Name:               name,
		Photo:              claims.Picture,
		Role:               domain.RoleConsumer,
		SubscriptionPlan:   "free",
		SubscriptionExpiry: now.Add(domain.DefaultSubscriptionPeriod),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// reconcile merges verified claims into a stored account. Stored fields win
// for everything business-relevant; claims only fill presentation fields
// the record never captured.
func reconcile(stored *domain.Account, claims *ports.IdentityClaims) *domain.Account {
	merged := *stored
	if merged.Name == "" {
		merged.Name = claims.Name
	}
	if merged.Photo == "" {
		merged.Photo = claims.Picture
	}
	return &merged
}
