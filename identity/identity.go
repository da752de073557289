// Package identity is the identity-provider collaborator: it accepts
// credentials, mints bearer tokens and resolves them back to users.
// The report API consumes only the Provider interface so tests can
// substitute a fake.
package identity

import (
	"context"

	"cityreport-be/models"
)

// Session is what a successful sign-in returns.
type Session struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type Provider interface {
	// SignIn validates credentials and returns a token pair.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// ResolveToken validates a bearer token and returns the claim set
	// as a user, or rejects it.
	ResolveToken(ctx context.Context, token string) (*models.User, error)

	// SignOut acknowledges a logout. Tokens are stateless, so this is
	// idempotent and succeeds with or without a live token.
	SignOut(ctx context.Context, token string) error

	// Ready reports whether the provider can serve sign-ins, meaning
	// the provisioned admin identity is reachable.
	Ready(ctx context.Context) error
}
