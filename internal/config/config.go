package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName        = "ShifaCare"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour

	defaultAccessTokenTTL  = 30 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	defaultBcryptCost      = 12
	defaultPhoneMinDigits  = 10
	defaultPhoneMaxDigits  = 15
	defaultCountryCode     = "+1"
	defaultCacheTTL        = 5 * time.Minute
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	// Auth surface.
	JWTSecret              string
	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	BcryptCost             int
	PhoneMinDigits         int
	PhoneMaxDigits         int
	PhoneCountryCode       string
	PasswordRequireSpecial bool

	// Directory/catalog listing cache.
	CacheTTL time.Duration
}

// Load reads configuration values from the environment and populates a Config
// instance. A .env file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:          getEnv("APP_NAME", defaultAppName),
		AppEnv:           getEnv("APP_ENV", defaultAppEnv),
		Port:             getEnv("PORT", defaultPort),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		ShutdownPeriod:   defaultShutdownDelay,
		IdempotencyTTL:   defaultIdempotencyTTL,
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AccessTokenTTL:   defaultAccessTokenTTL,
		RefreshTokenTTL:  defaultRefreshTokenTTL,
		BcryptCost:       defaultBcryptCost,
		PhoneMinDigits:   defaultPhoneMinDigits,
		PhoneMaxDigits:   defaultPhoneMaxDigits,
		PhoneCountryCode: getEnv("PHONE_COUNTRY_CODE", defaultCountryCode),
		CacheTTL:         defaultCacheTTL,
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("IDEMPOTENCY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
		}
		cfg.IdempotencyTTL = d
	}

	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
		}
		cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRE_DAYS: %w", err)
		}
		cfg.RefreshTokenTTL = time.Duration(days) * 24 * time.Hour
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("PHONE_MIN_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PHONE_MIN_LENGTH: %w", err)
		}
		cfg.PhoneMinDigits = n
	}

	if v := os.Getenv("PHONE_MAX_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PHONE_MAX_LENGTH: %w", err)
		}
		cfg.PhoneMaxDigits = n
	}

	if v := os.Getenv("PASSWORD_REQUIRE_SPECIAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PASSWORD_REQUIRE_SPECIAL: %w", err)
		}
		cfg.PasswordRequireSpecial = b
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, fmt.Errorf("JWT_SECRET must be set")
		}
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set")
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set")
		}
	}

	return cfg, nil
}

// IsDev reports whether the app runs in a development environment, where the
// in-memory repositories may substitute for Postgres and Redis.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
