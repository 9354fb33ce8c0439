package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mangetsu-dev/mangetsu/internal/catalog"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/database"
	"github.com/mangetsu-dev/mangetsu/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvMangetsuEnv             = "MANGETSU_ENV"
	EnvMangetsuShutdownTimeout = "MANGETSU_SHUTDOWN_TIMEOUT"
	EnvMangetsuVersion         = "MANGETSU_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "MANGETSU_DB_HOST",
	Port:            "MANGETSU_DB_PORT",
	Name:            "MANGETSU_DB_NAME",
	User:            "MANGETSU_DB_USER",
	Password:        "MANGETSU_DB_PASSWORD",
	SSLMode:         "MANGETSU_DB_SSL_MODE",
	MaxOpenConns:    "MANGETSU_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "MANGETSU_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "MANGETSU_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "MANGETSU_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "MANGETSU_STORAGE_CONTAINER_NAME",
	ConnectionString: "MANGETSU_STORAGE_CONNECTION_STRING",
}

var authEnv = &auth.Env{
	Issuer:          "MANGETSU_AUTH_ISSUER",
	Audience:        "MANGETSU_AUTH_AUDIENCE",
	Secret:          "MANGETSU_AUTH_SECRET",
	TokenTTL:        "MANGETSU_AUTH_TOKEN_TTL",
	BcryptCost:      "MANGETSU_AUTH_BCRYPT_COST",
	OIDCIssuer:      "MANGETSU_AUTH_OIDC_ISSUER",
	OIDCClientID:    "MANGETSU_AUTH_OIDC_CLIENT_ID",
	OIDCAdminEmails: "MANGETSU_AUTH_OIDC_ADMIN_EMAILS",
}

var catalogEnv = &catalog.Env{
	MangaDxURL:      "MANGETSU_CATALOG_MANGADX_URL",
	MangaDxCoverURL: "MANGETSU_CATALOG_MANGADX_COVER_URL",
	MangaPlusURL:    "MANGETSU_CATALOG_MANGAPLUS_URL",
	RequestTimeout:  "MANGETSU_CATALOG_REQUEST_TIMEOUT",
	DefaultLanguage: "MANGETSU_CATALOG_DEFAULT_LANGUAGE",
	PageSize:        "MANGETSU_CATALOG_PAGE_SIZE",
}

// Config is the root configuration for the Mangetsu service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Auth            auth.Config     `toml:"auth"`
	Catalog         catalog.Config  `toml:"catalog"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the MANGETSU_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvMangetsuEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.Catalog.Merge(&overlay.Catalog)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Catalog.Finalize(catalogEnv); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvMangetsuShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvMangetsuVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvMangetsuEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
