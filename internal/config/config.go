package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Tasks    TaskConfig     `mapstructure:"tasks"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication and rate-limit settings.
type AuthConfig struct {
	// TokenSecret signs issued bearer tokens. Must be long enough to make
	// HMAC-SHA256 brute force impractical.
	TokenSecret string `mapstructure:"token_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes bounds how long an issued token stays valid
	// even if never revoked.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the work factor for password hashing.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`

	// LoginMaxAttempts is the number of failed logins allowed per client
	// key inside one limiter window before returning 429.
	LoginMaxAttempts int `mapstructure:"login_max_attempts" validate:"required,gt=0"`

	// LoginWindowSeconds is the login limiter window length.
	LoginWindowSeconds int `mapstructure:"login_window_seconds" validate:"required,gt=0"`

	// ThrottlePerMinute is the coarse request throttle applied to the
	// registration and login endpoints. Independent of the login limiter.
	ThrottlePerMinute int `mapstructure:"throttle_per_minute" validate:"required,gt=0"`
}

// TaskConfig contains task subsystem settings.
type TaskConfig struct {
	// CacheTTLMinutes bounds the read-through task cache entries.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" validate:"required,gt=0"`
}
