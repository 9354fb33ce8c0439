package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/auth"
)

func testConfig() *auth.Config {
	return &auth.Config{
		Issuer:     "mangetsu",
		Audience:   "mangetsu-web",
		Secret:     "test-secret-test-secret-test-secret",
		TokenTTL:   "1h",
		BcryptCost: 4,
	}
}

func testPrincipal() auth.Principal {
	return auth.Principal{
		UserID: uuid.New(),
		Email:  "reader@example.com",
		Role:   auth.RoleReader,
	}
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := auth.NewTokens(testConfig())
	want := testPrincipal()

	raw, expires, err := tokens.Issue(want)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if expires.IsZero() {
		t.Error("Issue() expires is zero")
	}

	got, err := tokens.Verify(context.Background(), raw)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != want {
		t.Errorf("Verify() = %+v, want %+v", got, want)
	}
}

func TestTokensVerifyRejects(t *testing.T) {
	expired := testConfig()
	expired.TokenTTL = "-1h"

	wrongSecret := testConfig()
	wrongSecret.Secret = "a-different-secret-a-different-secret"

	wrongAudience := testConfig()
	wrongAudience.Audience = "other-service"

	tests := []struct {
		name   string
		issuer *auth.Config
	}{
		{"expired token", expired},
		{"wrong secret", wrongSecret},
		{"wrong audience", wrongAudience},
	}

	verifier := auth.NewTokens(testConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _, err := auth.NewTokens(tt.issuer).Issue(testPrincipal())
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			if _, err := verifier.Verify(context.Background(), raw); !errors.Is(err, auth.ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokensVerifyGarbage(t *testing.T) {
	tokens := auth.NewTokens(testConfig())

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tokens.Verify(context.Background(), raw); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestPasswords(t *testing.T) {
	passwords := auth.NewPasswords(testConfig())

	hash, err := passwords.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !passwords.Compare(hash, "correct horse battery staple") {
		t.Error("Compare() with matching password failed")
	}
	if passwords.Compare(hash, "wrong password") {
		t.Error("Compare() with wrong password succeeded")
	}
}

type stubVerifier struct {
	principal auth.Principal
	err       error
}

func (s stubVerifier) Verify(ctx context.Context, token string) (auth.Principal, error) {
	return s.principal, s.err
}

func TestMulti(t *testing.T) {
	good := testPrincipal()

	tests := []struct {
		name      string
		verifiers []auth.Verifier
		want      auth.Principal
		wantErr   bool
	}{
		{
			name:      "first succeeds",
			verifiers: []auth.Verifier{stubVerifier{principal: good}},
			want:      good,
		},
		{
			name: "falls through to second",
			verifiers: []auth.Verifier{
				stubVerifier{err: auth.ErrInvalidToken},
				stubVerifier{principal: good},
			},
			want: good,
		},
		{
			name: "all fail",
			verifiers: []auth.Verifier{
				stubVerifier{err: auth.ErrInvalidToken},
				stubVerifier{err: auth.ErrInvalidToken},
			},
			wantErr: true,
		},
		{
			name:      "nil verifiers skipped",
			verifiers: []auth.Verifier{nil, stubVerifier{principal: good}},
			want:      good,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Multi(tt.verifiers...).Verify(context.Background(), "token")
			if tt.wantErr {
				if err == nil {
					t.Fatal("Verify() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Verify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	if _, ok := auth.FromContext(context.Background()); ok {
		t.Error("FromContext() on empty context reported a principal")
	}

	want := testPrincipal()
	ctx := auth.WithPrincipal(context.Background(), want)

	got, ok := auth.FromContext(ctx)
	if !ok {
		t.Fatal("FromContext() missing principal")
	}
	if got != want {
		t.Errorf("FromContext() = %+v, want %+v", got, want)
	}
}
