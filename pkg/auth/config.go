package auth

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds session token and password hashing parameters.
type Config struct {
	Issuer     string     `toml:"issuer"`
	Audience   string     `toml:"audience"`
	Secret     string     `toml:"secret"`
	TokenTTL   string     `toml:"token_ttl"`
	BcryptCost int        `toml:"bcrypt_cost"`
	OIDC       OIDCConfig `toml:"oidc"`
}

// OIDCConfig holds optional OIDC admin SSO parameters.
// OIDC verification is disabled when Issuer is empty.
type OIDCConfig struct {
	Issuer      string   `toml:"issuer"`
	ClientID    string   `toml:"client_id"`
	AdminEmails []string `toml:"admin_emails"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Issuer          string
	Audience        string
	Secret          string
	TokenTTL        string
	BcryptCost      string
	OIDCIssuer      string
	OIDCClientID    string
	OIDCAdminEmails string
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Enabled reports whether OIDC verification is configured.
func (c *OIDCConfig) Enabled() bool {
	return c.Issuer != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
	if overlay.OIDC.Issuer != "" {
		c.OIDC.Issuer = overlay.OIDC.Issuer
	}
	if overlay.OIDC.ClientID != "" {
		c.OIDC.ClientID = overlay.OIDC.ClientID
	}
	if overlay.OIDC.AdminEmails != nil {
		c.OIDC.AdminEmails = overlay.OIDC.AdminEmails
	}
}

func (c *Config) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "mangetsu"
	}
	if c.Audience == "" {
		c.Audience = "mangetsu-web"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "24h"
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.Audience != "" {
		if v := os.Getenv(env.Audience); v != "" {
			c.Audience = v
		}
	}
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.TokenTTL != "" {
		if v := os.Getenv(env.TokenTTL); v != "" {
			c.TokenTTL = v
		}
	}
	if env.BcryptCost != "" {
		if v := os.Getenv(env.BcryptCost); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.BcryptCost = n
			}
		}
	}
	if env.OIDCIssuer != "" {
		if v := os.Getenv(env.OIDCIssuer); v != "" {
			c.OIDC.Issuer = v
		}
	}
	if env.OIDCClientID != "" {
		if v := os.Getenv(env.OIDCClientID); v != "" {
			c.OIDC.ClientID = v
		}
	}
	if env.OIDCAdminEmails != "" {
		if v := os.Getenv(env.OIDCAdminEmails); v != "" {
			emails := strings.Split(v, ",")
			c.OIDC.AdminEmails = make([]string, 0, len(emails))
			for _, email := range emails {
				if trimmed := strings.TrimSpace(email); trimmed != "" {
					c.OIDC.AdminEmails = append(c.OIDC.AdminEmails, trimmed)
				}
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret required")
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("invalid bcrypt_cost: %d", c.BcryptCost)
	}
	if c.OIDC.Enabled() && c.OIDC.ClientID == "" {
		return fmt.Errorf("oidc client_id required when issuer is set")
	}
	return nil
}
