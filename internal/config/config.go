package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// defaultAdminPassword is the development-only admin credential. Validate
// refuses to start a production server that still uses it.
const defaultAdminPassword = "admin123"

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32         `mapstructure:"DB_MIN_CONNS"`
	AdminEmail     string        `mapstructure:"ADMIN_EMAIL"`
	AdminPassword  string        `mapstructure:"ADMIN_PASSWORD"`
	SessionSecret  string        `mapstructure:"SESSION_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	SessionStore   string        `mapstructure:"SESSION_STORE"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("ADMIN_EMAIL", "admin@mediflow.com")
	v.SetDefault("ADMIN_PASSWORD", defaultAdminPassword)
	v.SetDefault("SESSION_SECRET", "dev-session-secret-do-not-use")
	v.SetDefault("SESSION_TTL", "8h")
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("ADMIN_EMAIL")
	v.BindEnv("ADMIN_PASSWORD")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL")
	v.BindEnv("SESSION_STORE")
	v.BindEnv("REDIS_URL")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. A production server
// must carry its own admin credential and a session signing secret; the
// development defaults are refused outright.
func (c *Config) Validate() error {
	if c.SessionStore != "memory" && c.SessionStore != "redis" {
		return fmt.Errorf("SESSION_STORE must be \"memory\" or \"redis\", got %q", c.SessionStore)
	}
	if c.SessionStore == "redis" && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when SESSION_STORE is \"redis\"")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}

	if c.IsProduction() {
		if c.AdminPassword == defaultAdminPassword {
			return fmt.Errorf("ADMIN_PASSWORD must be changed from the development default in production")
		}
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 characters in production, got %d", len(c.SessionSecret))
		}
	}

	return nil
}
