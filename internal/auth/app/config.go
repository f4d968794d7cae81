package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/social"
	"github.com/aussiebroadwan/readinglog/pkg/cryptox"
)

// Blacklist backends.
const (
	BlacklistSQLite = "sqlite"
	BlacklistRedis  = "redis"
)

// ProviderConfig is one OAuth2 provider's credentials. A provider without a
// client id is disabled.
type ProviderConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`

	// Endpoint overrides, mostly for tests against a fake provider.
	AuthURL     string `env:"AUTH_URL"`
	TokenURL    string `env:"TOKEN_URL"`
	UserInfoURL string `env:"USERINFO_URL"`
}

type Config struct {
	Issuer      string        `env:"AUTH_ISSUER" envDefault:"readinglog-auth"`
	Algorithm   string        `env:"AUTH_ALGORITHM" envDefault:"HS256"`              // HS256 or EdDSA
	JWTSecret   string        `env:"AUTH_JWT_SECRET"`                                // Required for HS256
	KeyFile     string        `env:"AUTH_SIGNING_KEY_FILE"`                          // EdDSA PEM; empty generates an ephemeral key
	AccessTTL   time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTTL  time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"336h"`
	ClockSkew   time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"0s"`
	AdminEmails []string      `env:"AUTH_ADMIN_EMAILS" envSeparator:","`

	RevokeRefreshOnLogout bool `env:"AUTH_REVOKE_REFRESH_ON_LOGOUT" envDefault:"true"`

	DatabaseFile    string `env:"AUTH_DATABASE_FILE" envDefault:"readinglog.db"`
	BlacklistDriver string `env:"AUTH_BLACKLIST_DRIVER" envDefault:"sqlite"`
	RedisURL        string `env:"AUTH_REDIS_URL"`
	RedisPrefix     string `env:"AUTH_REDIS_PREFIX" envDefault:"readinglog:blacklist:"`

	Kakao  ProviderConfig `envPrefix:"OAUTH2_KAKAO_"`
	Naver  ProviderConfig `envPrefix:"OAUTH2_NAVER_"`
	Google ProviderConfig `envPrefix:"OAUTH2_GOOGLE_"`

	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// ParseConfig builds a Config from vars alone, ignoring the process
// environment.
func ParseConfig(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Algorithm {
	case "HS256":
		if len(c.JWTSecret) < cryptox.MinSecretSize {
			errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes for HS256", cryptox.MinSecretSize))
		}
	case "EdDSA":
	default:
		errs = append(errs, fmt.Errorf("AUTH_ALGORITHM %q is not supported (HS256, EdDSA)", c.Algorithm))
	}

	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_TTL must be positive"))
	}
	if c.RefreshTTL <= c.AccessTTL {
		errs = append(errs, errors.New("AUTH_REFRESH_TOKEN_TTL must be longer than AUTH_ACCESS_TOKEN_TTL"))
	}
	if c.ClockSkew < 0 {
		errs = append(errs, errors.New("AUTH_CLOCK_SKEW must not be negative"))
	}

	switch c.BlacklistDriver {
	case BlacklistSQLite:
	case BlacklistRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("AUTH_REDIS_URL is required for the redis blacklist"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_BLACKLIST_DRIVER %q is not supported (sqlite, redis)", c.BlacklistDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	for name, p := range c.providerMap() {
		if p.ClientID != "" && p.RedirectURL == "" {
			errs = append(errs, fmt.Errorf("OAUTH2_%s_REDIRECT_URL is required when a client id is set", strings.ToUpper(name.String())))
		}
	}

	return errors.Join(errs...)
}

func (c Config) providerMap() map[domain.ProviderType]ProviderConfig {
	return map[domain.ProviderType]ProviderConfig{
		domain.ProviderKakao:  c.Kakao,
		domain.ProviderNaver:  c.Naver,
		domain.ProviderGoogle: c.Google,
	}
}

// Providers converts the provider settings for the social client.
func (c Config) Providers() map[domain.ProviderType]social.ProviderConfig {
	out := make(map[domain.ProviderType]social.ProviderConfig, 3)
	for name, p := range c.providerMap() {
		out[name] = social.ProviderConfig{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			RedirectURL:  p.RedirectURL,
			AuthURL:      p.AuthURL,
			TokenURL:     p.TokenURL,
			UserInfoURL:  p.UserInfoURL,
		}
	}
	return out
}
