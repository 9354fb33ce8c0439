package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Passwords hashes and verifies account passwords with bcrypt.
type Passwords struct {
	cost int
}

// NewPasswords creates a password system with the configured bcrypt cost.
func NewPasswords(cfg *Config) *Passwords {
	return &Passwords{cost: cfg.BcryptCost}
}

// Hash returns the bcrypt hash of the given password.
func (p *Passwords) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether the password matches the stored hash.
func (p *Passwords) Compare(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) && err == nil
}
