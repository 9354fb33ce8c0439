package catalog

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds external catalog API parameters.
type Config struct {
	MangaDxURL      string `toml:"mangadx_url"`
	MangaDxCoverURL string `toml:"mangadx_cover_url"`
	MangaPlusURL    string `toml:"mangaplus_url"`
	RequestTimeout  string `toml:"request_timeout"`
	DefaultLanguage string `toml:"default_language"`
	PageSize        int    `toml:"page_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MangaDxURL      string
	MangaDxCoverURL string
	MangaPlusURL    string
	RequestTimeout  string
	DefaultLanguage string
	PageSize        string
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *Config) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
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
	if overlay.MangaDxURL != "" {
		c.MangaDxURL = overlay.MangaDxURL
	}
	if overlay.MangaDxCoverURL != "" {
		c.MangaDxCoverURL = overlay.MangaDxCoverURL
	}
	if overlay.MangaPlusURL != "" {
		c.MangaPlusURL = overlay.MangaPlusURL
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.DefaultLanguage != "" {
		c.DefaultLanguage = overlay.DefaultLanguage
	}
	if overlay.PageSize != 0 {
		c.PageSize = overlay.PageSize
	}
}

func (c *Config) loadDefaults() {
	if c.MangaDxURL == "" {
		c.MangaDxURL = "https://api.mangadx.org"
	}
	if c.MangaDxCoverURL == "" {
		c.MangaDxCoverURL = "https://uploads.mangadx.org/covers"
	}
	if c.MangaPlusURL == "" {
		c.MangaPlusURL = "https://jumpg-webapi.tokyo-cdn.com/api"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "15s"
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	if c.PageSize == 0 {
		c.PageSize = 24
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MangaDxURL != "" {
		if v := os.Getenv(env.MangaDxURL); v != "" {
			c.MangaDxURL = v
		}
	}
	if env.MangaDxCoverURL != "" {
		if v := os.Getenv(env.MangaDxCoverURL); v != "" {
			c.MangaDxCoverURL = v
		}
	}
	if env.MangaPlusURL != "" {
		if v := os.Getenv(env.MangaPlusURL); v != "" {
			c.MangaPlusURL = v
		}
	}
	if env.RequestTimeout != "" {
		if v := os.Getenv(env.RequestTimeout); v != "" {
			c.RequestTimeout = v
		}
	}
	if env.DefaultLanguage != "" {
		if v := os.Getenv(env.DefaultLanguage); v != "" {
			c.DefaultLanguage = v
		}
	}
	if env.PageSize != "" {
		if v := os.Getenv(env.PageSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.PageSize = n
			}
		}
	}
}

func (c *Config) validate() error {
	for name, raw := range map[string]string{
		"mangadx_url":       c.MangaDxURL,
		"mangadx_cover_url": c.MangaDxCoverURL,
		"mangaplus_url":     c.MangaPlusURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %s", name, raw)
		}
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive")
	}
	return nil
}
