// Package auth provides session token issuance and verification, password
// hashing, and the request principal carried through handler context.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles assignable to user accounts.
const (
	RoleReader = "reader"
	RoleAdmin  = "admin"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// Verifier validates a bearer token and resolves its principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

type contextKey struct{}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext extracts the principal attached by the authentication middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// Multi returns a Verifier that tries each verifier in order, returning the
// first successful principal. Nil verifiers are skipped.
func Multi(verifiers ...Verifier) Verifier {
	return multi(verifiers)
}

type multi []Verifier

func (m multi) Verify(ctx context.Context, token string) (Principal, error) {
	var lastErr error = ErrInvalidToken
	for _, v := range m {
		if v == nil {
			continue
		}
		p, err := v.Verify(ctx, token)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return Principal{}, lastErr
}
