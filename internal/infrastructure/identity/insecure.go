package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dosapp/discovery-api/internal/core/ports"
)

// InsecureVerifier decodes JWT claims WITHOUT verifying the signature. It
// exists so local development works without Firebase credentials; the
// router refuses to use it when the deployment is flagged production.
type InsecureVerifier struct{}

func NewInsecureVerifier() *InsecureVerifier {
	return &InsecureVerifier{}
}

// Verify parses the token unverified and extracts the standard identity
// claims. A token without a subject is still rejected.
func (v *InsecureVerifier) Verify(_ context.Context, token string) (*ports.IdentityClaims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		if uid, ok := claims["user_id"].(string); ok {
			sub = uid
		}
	}
	if sub == "" {
		return nil, fmt.Errorf("token missing subject claim")
	}

	out := &ports.IdentityClaims{ExternalID: sub}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		out.Name = name
	}
	if picture, ok := claims["picture"].(string); ok {
		out.Picture = picture
	}
	return out, nil
}
