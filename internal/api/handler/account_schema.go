package handler

import "github.com/dosapp/discovery-api/internal/core/ports"

type chooseRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=consumer owner"`
}

// sessionResponse is the account view clients route on after sign-in.
type sessionResponse struct {
	ID                  string `json:"id"`
	ExternalID          string `json:"externalId"`
	Email               string `json:"email"`
	Name                string `json:"name"`
	Photo               string `json:"photo,omitempty"`
	Role                string `json:"role"`
	SubscriptionPlan    string `json:"subscriptionPlan"`
	ShopProfileComplete bool   `json:"shopProfileComplete"`
	OnboardingState     string `json:"onboardingState"`
}

func toSessionResponse(s *ports.Session) sessionResponse {
	return sessionResponse{
		ID:                  s.Account.ID,
		ExternalID:          s.Account.ExternalID,
		Email:               s.Account.Email,
		Name:                s.Account.Name,
		Photo:               s.Account.Photo,
		Role:                s.Account.Role,
		SubscriptionPlan:    s.Account.SubscriptionPlan,
		ShopProfileComplete: s.Account.ShopProfileComplete,
		OnboardingState:     string(s.OnboardingState),
	}
}
