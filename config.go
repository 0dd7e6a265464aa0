package goSSO

import (
	"errors"
	"time"

	"github.com/MrEthical07/goSSO/password"
)

// Config carries engine tuning. Instances are configured before Build and
// treated as immutable afterwards.
type Config struct {
	Tokens        TokensConfig
	RateLimit     RateLimitConfig
	Notifications NotificationsConfig
	Password      PasswordConfig
	Metrics       MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokensConfig fixes the credential lifetimes. Account tokens and SSO cookies
// are refreshed wholesale on keep-alive, never partially extended.
type TokensConfig struct {
	AccountTokenTTL time.Duration
	SSOCookieTTL    time.Duration
	UserTokenTTL    time.Duration
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig throttles login attempts per username. Disabled by default.
type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
}

/*
====================================
NOTIFICATION CONFIG
====================================
*/

// NotificationsConfig locates the cache's key-expiration event stream.
type NotificationsConfig struct {
	// Channel is the pub/sub channel Redis publishes expired key names on.
	// Requires notify-keyspace-events to include Ex on the server.
	Channel string
	// TokenKeyPrefix selects which expired keys belong to user credential
	// tokens; everything else is dropped.
	TokenKeyPrefix string
	// CleanupTimeout bounds each durable-store delete triggered by an
	// expiration event.
	CleanupTimeout time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// Password schemes selectable via PasswordConfig.Scheme.
const (
	SchemeArgon2id  = "argon2id"
	SchemeSHA256Hex = "sha256hex"
)

// PasswordConfig selects the password verification scheme. SchemeSHA256Hex
// exists for interop with hashes stored by pre-existing deployments.
type PasswordConfig struct {
	Scheme string
	Argon2 password.Argon2Config
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the engine's lock-free counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Tokens: TokensConfig{
			AccountTokenTTL: 24 * time.Hour,
			SSOCookieTTL:    2 * time.Hour,
			UserTokenTTL:    24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Enabled:     false,
			MaxRequests: 10,
			Window:      time.Minute,
		},
		Notifications: NotificationsConfig{
			Channel:        "__keyevent@0__:expired",
			TokenKeyPrefix: "token:",
			CleanupTimeout: 5 * time.Second,
		},
		Password: PasswordConfig{
			Scheme: SchemeArgon2id,
			Argon2: password.DefaultArgon2Config(),
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.Tokens.AccountTokenTTL <= 0 {
		return errors.New("Tokens.AccountTokenTTL must be positive")
	}
	if c.Tokens.SSOCookieTTL <= 0 {
		return errors.New("Tokens.SSOCookieTTL must be positive")
	}
	if c.Tokens.UserTokenTTL <= 0 {
		return errors.New("Tokens.UserTokenTTL must be positive")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.MaxRequests <= 0 {
			return errors.New("RateLimit.MaxRequests must be positive when enabled")
		}
		if c.RateLimit.Window <= 0 {
			return errors.New("RateLimit.Window must be positive when enabled")
		}
	}
	if c.Notifications.Channel == "" {
		return errors.New("Notifications.Channel must not be empty")
	}
	if c.Notifications.TokenKeyPrefix == "" {
		return errors.New("Notifications.TokenKeyPrefix must not be empty")
	}
	if c.Notifications.CleanupTimeout <= 0 {
		return errors.New("Notifications.CleanupTimeout must be positive")
	}
	switch c.Password.Scheme {
	case SchemeArgon2id, SchemeSHA256Hex:
	default:
		return errors.New("Password.Scheme must be argon2id or sha256hex")
	}
	return nil
}
