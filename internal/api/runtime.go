package api

import (
	"context"
	"fmt"

	"github.com/mangetsu-dev/mangetsu/internal/config"
	"github.com/mangetsu-dev/mangetsu/internal/infrastructure"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// authentication systems shared by all domain handlers.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Tokens     *auth.Tokens
	Passwords  *auth.Passwords
	Verifier   auth.Verifier
}

// NewRuntime creates an API runtime with a module-scoped logger. When OIDC is
// configured, admin SSO tokens are accepted alongside session tokens.
func NewRuntime(
	ctx context.Context,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) (*Runtime, error) {
	tokens := auth.NewTokens(&cfg.Auth)
	passwords := auth.NewPasswords(&cfg.Auth)

	var verifier auth.Verifier = tokens
	if cfg.Auth.OIDC.Enabled() {
		sso, err := auth.NewOIDCVerifier(ctx, &cfg.Auth.OIDC)
		if err != nil {
			return nil, fmt.Errorf("oidc init failed: %w", err)
		}
		verifier = auth.Multi(tokens, sso)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Tokens:     tokens,
		Passwords:  passwords,
		Verifier:   verifier,
	}, nil
}
