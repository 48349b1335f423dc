// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Security  SecurityConfig
	Session   SessionConfig
	Rate      RateLimitConfig
	Logging   LoggingConfig
	Media     MediaConfig
	Site      SiteConfig
	Retention RetentionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Required unless Memory is set.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Memory keeps all data in process instead of PostgreSQL.
	Memory bool `env:"DB_MEMORY" default:"false"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AdminEmail is the login of the single admin account.
	AdminEmail string `env:"ADMIN_EMAIL"`

	// AdminPasswordHash is a bcrypt hash of the admin password.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// AdminPassword is a plain password, hashed at startup. Ignored when
	// AdminPasswordHash is set.
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// CookieSecure marks the session cookie Secure (default: false)
	CookieSecure bool `env:"COOKIE_SECURE" default:"false"`
}

// SessionConfig holds admin session settings.
type SessionConfig struct {
	// TTL is how long a session stays valid after login (default: 12h)
	TTL time.Duration `env:"SESSION_TTL" default:"12h"`

	// CleanupInterval is how often expired sessions are purged (default: 10m)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" default:"10m"`
}

// RateLimitConfig holds rate limiting settings for public form posts.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// FormsPerMinute is the number of form posts allowed per IP (default: 10)
	FormsPerMinute int `env:"RATE_LIMIT_FORMS_PER_MINUTE" default:"10"`

	// LoginPerMinute is the number of login attempts allowed per IP (default: 5)
	LoginPerMinute int `env:"RATE_LIMIT_LOGIN_PER_MINUTE" default:"5"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MediaConfig holds video metadata lookup settings.
type MediaConfig struct {
	// OEmbedEndpoint is queried for video titles. Empty disables lookups.
	OEmbedEndpoint string `env:"MEDIA_OEMBED_ENDPOINT" default:"https://www.youtube.com/oembed"`

	// Timeout bounds a single lookup including retries (default: 5s)
	Timeout time.Duration `env:"MEDIA_TIMEOUT" default:"5s"`
}

// SiteConfig holds public site identity.
type SiteConfig struct {
	Name         string `env:"SITE_NAME" default:"Open Hands Foundation"`
	Tagline      string `env:"SITE_TAGLINE" default:"Education and community, together"`
	ContactEmail string `env:"SITE_CONTACT_EMAIL" default:"hello@example.org"`
}

// RetentionConfig holds housekeeping settings.
type RetentionConfig struct {
	// AuditRetentionDays is how long audit entries are kept (default: 365)
	AuditRetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"365"`

	// MaintenanceSchedule is the cron expression for housekeeping (default: daily 03:00)
	MaintenanceSchedule string `env:"MAINTENANCE_SCHEDULE" default:"0 3 * * *"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
