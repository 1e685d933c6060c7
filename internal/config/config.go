// Package config manages environment variables.
//
// It reads variables from the process environment (and the `.env` file
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before any read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix is stripped from every variable before it is mapped.
//
// Nested fields use "." as the delimiter, e.g.
// PORTAL_SERVER.PORT -> server.port -> Config.Server.Port
const EnvPrefix = "PORTAL_"

// ServiceName tags logs, traces and metrics.
const ServiceName = "campus-portal"

// InstitutionName is printed on receipts and emails.
const InstitutionName = "Campus Portal"

// Config is the root configuration object for the application.
//
// Optional blocks are pointers; nil means "use defaults" and is filled
// in by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	RateLimit     *RateLimitConfig     `koanf:"rate_limit"`
	Upload        *UploadConfig        `koanf:"upload"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	// BodyLimit uses echo's size notation ("10M", "512K").
	BodyLimit string `koanf:"body_limit"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
	// MigrateOnStart applies pending migrations when the server boots.
	MigrateOnStart bool `koanf:"migrate_on_start"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// AuthConfig stores token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret" validate:"required,min=32"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	Issuer     string        `koanf:"issuer"`
	BcryptCost int           `koanf:"bcrypt_cost" validate:"omitempty,min=4,max=31"`

	// BootstrapAdminEmail/Password create the first admin on boot when both
	// are set and no user with that email exists.
	BootstrapAdminEmail    string `koanf:"bootstrap_admin_email" validate:"omitempty,email"`
	BootstrapAdminPassword string `koanf:"bootstrap_admin_password"`
}

// IntegrationConfig holds third-party service credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
	AdminEmail   string `koanf:"admin_email" validate:"omitempty,email"`
	// EmailRatePerSecond caps outgoing Resend calls.
	EmailRatePerSecond float64 `koanf:"email_rate_per_second"`
	// PublicURL is the frontend address used in email links and receipts.
	PublicURL string `koanf:"public_url" validate:"omitempty,url"`
}

// RateLimitConfig selects the limiter backend and proxy trust.
type RateLimitConfig struct {
	// Enabled is nil when unset; limiters are on unless it is explicitly false.
	Enabled *bool `koanf:"enabled"`
	// Store is "redis" or "memory".
	Store          string   `koanf:"store" validate:"oneof=redis memory"`
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// UploadConfig controls where and how large attachments can be.
type UploadConfig struct {
	Dir          string `koanf:"dir" validate:"required"`
	MaxSizeBytes int64  `koanf:"max_size_bytes" validate:"min=1"`
}

// DefaultRateLimitConfig enables the redis store without trusted proxies.
func DefaultRateLimitConfig() *RateLimitConfig {
	enabled := true
	return &RateLimitConfig{
		Enabled: &enabled,
		Store:   "redis",
	}
}

// IsEnabled reports whether the limiters run.
func (r *RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

func (r *RateLimitConfig) applyDefaults() {
	defaults := DefaultRateLimitConfig()
	if r.Enabled == nil {
		r.Enabled = defaults.Enabled
	}
	if r.Store == "" {
		r.Store = defaults.Store
	}
}

func (u *UploadConfig) applyDefaults() {
	defaults := DefaultUploadConfig()
	if u.Dir == "" {
		u.Dir = defaults.Dir
	}
	if u.MaxSizeBytes == 0 {
		u.MaxSizeBytes = defaults.MaxSizeBytes
	}
}

// DefaultUploadConfig stores files under ./uploads with a 5MB cap.
func DefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		Dir:          "uploads",
		MaxSizeBytes: 5 << 20,
	}
}

// DSN renders the database settings as a postgres:// URL.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	// URL-encode the password so special characters don't break the DSN.
	encodedPassword := url.QueryEscape(d.Password)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		encodedPassword,
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		logger.Error().Err(err).Msg("could not load initial env variables")
		return nil, fmt.Errorf("loading env: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Error().Err(err).Msg("could not unmarshal main config")
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		logger.Error().Err(err).Msg("config validation failed")
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid observability config")
		return nil, fmt.Errorf("validating observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	// Blocks are created by koanf as soon as one of their variables is set,
	// so defaults are filled per field.
	if c.RateLimit == nil {
		c.RateLimit = &RateLimitConfig{}
	}
	c.RateLimit.applyDefaults()
	if c.Upload == nil {
		c.Upload = &UploadConfig{}
	}
	c.Upload.applyDefaults()

	if c.Server.BodyLimit == "" {
		c.Server.BodyLimit = "10M"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = ServiceName
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Campus Portal <noreply@campus-portal.dev>"
	}
	if c.Integration.EmailRatePerSecond <= 0 {
		c.Integration.EmailRatePerSecond = 2
	}
}
