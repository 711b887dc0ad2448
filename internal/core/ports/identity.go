package ports

import "context"

// IdentityClaims is the verified claim set obtained from the external
// identity provider. The claims are read-only hints: persisted account
// fields always win for role, subscription, and profile state.
type IdentityClaims struct {
	ExternalID string
	Email      string
	Name       string
	Picture    string
}

// IdentityVerifier validates an opaque bearer credential against the
// external identity provider and returns the verified claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*IdentityClaims, error)
}
