package auth

import (
	"context"
	"fmt"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
)

// OIDCVerifier validates ID tokens from an external identity provider and
// maps allowlisted emails to the admin role. All other verified identities
// are treated as readers.
type OIDCVerifier struct {
	issuer   string
	verifier *oidc.IDTokenVerifier
	admins   []string
}

// NewOIDCVerifier discovers the provider at the configured issuer and builds
// an ID token verifier for the configured client.
func NewOIDCVerifier(ctx context.Context, cfg *OIDCConfig) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}

	return &OIDCVerifier{
		issuer:   cfg.Issuer,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		admins:   cfg.AdminEmails,
	}, nil
}

// Verify validates the ID token and returns a principal whose user ID is
// derived deterministically from the issuer and token subject.
func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (Principal, error) {
	token, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := token.Claims(&claims); err != nil {
		return Principal{}, ErrInvalidToken
	}

	role := RoleReader
	if claims.EmailVerified && slices.Contains(v.admins, claims.Email) {
		role = RoleAdmin
	}

	return Principal{
		UserID: uuid.NewSHA1(uuid.NameSpaceURL, []byte(v.issuer+"#"+token.Subject)),
		Email:  claims.Email,
		Role:   role,
	}, nil
}
