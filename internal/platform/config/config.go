package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Server captures process-wide configuration. It is constructed once at
// startup and injected into services; business logic never reads the
// environment directly.
type Server struct {
	Addr          string
	MetricsAddr   string
	DatabaseURL   string
	JWTSigningKey string
	TokenTTL      time.Duration
	BcryptCost    int
}

const defaultTokenTTL = 30 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:        getenv("TALENTHUB_ADDR", ":8080"),
		MetricsAddr: getenv("TALENTHUB_METRICS_ADDR", ":9090"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenTTL:    defaultTokenTTL,
		BcryptCost:  bcrypt.DefaultCost,
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		duration, err := time.ParseDuration(ttl)
		if err != nil {
			return Server{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = duration
	}

	if cost := os.Getenv("BCRYPT_COST"); cost != "" {
		n, err := strconv.Atoi(cost)
		if err != nil {
			return Server{}, fmt.Errorf("parse BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}

	cfg.JWTSigningKey = os.Getenv("JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Development fallback - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
