package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/transitpass/concession-backend-go/internal/models"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Analysis  AnalysisConfig
	Catalog   CatalogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// AuthConfig holds token validation settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// RateLimitConfig holds per-IP request limiting settings.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// AnalysisConfig holds the exclusion policy for issue-flagged trips.
type AnalysisConfig struct {
	ExcludeFlaggedFares bool `mapstructure:"exclude_flagged_fares"`
}

// CatalogConfig is the single versioned pass catalog every call site
// consumes. Pass order matters: it is the final tie-break for the
// recommendation engine.
type CatalogConfig struct {
	Version string                  `json:"version"`
	Passes  []models.ConcessionPass `json:"passes"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// CONCESSION_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.port", ":8080")
	v.SetDefault("database.path", filepath.Join(".", "data", "concession.db"))
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("rate_limit.limit", 120)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("analysis.exclude_flagged_fares", false)
	v.SetDefault("catalog.version", "2025-01")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CONCESSION_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "concession-backend"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CONCESSION")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing file falls back to defaults, but a file the caller named
	// explicitly must not be silently skipped when it is unreadable.
	if err := v.ReadInConfig(); err != nil {
		if cfgPath != "" && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.Catalog.Passes) == 0 {
		c.Catalog.Passes = DefaultPasses()
	}
	return c, nil
}

// DefaultPasses is the built-in concession pass catalog, used when the
// config file does not override it. The no-pass baseline always comes first.
func DefaultPasses() []models.ConcessionPass {
	return []models.ConcessionPass{
		{
			ID:           models.PassNoPass,
			Label:        "No Pass",
			MonthlyPrice: 0,
			Description:  "Your current fares without any concession pass.",
		},
		{
			ID:           models.PassBusUnlimited,
			Label:        "Undergrad Bus",
			MonthlyPrice: 55.50,
			Description:  "Unlimited rides on bus for undergrad students.",
		},
		{
			ID:           models.PassRailUnlimited,
			Label:        "Undergrad MRT",
			MonthlyPrice: 48,
			Description:  "Unlimited rides on MRT for undergrad students.",
		},
		{
			ID:           models.PassHybridUnlimited,
			Label:        "Undergrad Hybrid",
			MonthlyPrice: 81,
			Description:  "Unlimited rides on bus/MRT for undergrad students.",
		},
	}
}
