package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DBDriver     string `mapstructure:"DB_DRIVER"` // sqlite or postgres
	SQLitePath   string `mapstructure:"SQLITE_PATH"`
	DatabaseURL  string `mapstructure:"PGSQL_URL"`
	Port         string
	IsProduction bool
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	// Optional bearer auth. Empty secret disables it.
	JWTSecret string
	JWTIssuer string

	RateLimit          string   `mapstructure:"RATE_LIMIT"` // limiter formatted rate, e.g. "100-M"; empty disables
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Budget account selected at startup, created when missing.
	DefaultBudget   string `mapstructure:"DEFAULT_BUDGET"`
	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "data/envelope_budget.db")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "envelope-budget")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_BUDGET", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Environment variables override defaults
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DBDriver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.SQLitePath = v.GetString("SQLITE_PATH")
	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DBDriver != "sqlite" && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.LogLevel = v.GetString("LOG_LEVEL")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET not set. The API is served without authentication.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.DefaultBudget = strings.TrimSpace(v.GetString("DEFAULT_BUDGET"))

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdownTimeout, err := time.ParseDuration(shutdownStr)
	if err != nil {
		shutdownTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdownTimeout.String())
	}
	cfg.ShutdownTimeout = shutdownTimeout

	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
