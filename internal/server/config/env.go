package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A local .env
// file is loaded first if present; real environment variables win over it.
//
// Recognized variables:
//
//	SERVER_ADDRESS      HTTP bind address
//	DATABASE_DSN        PostgreSQL DSN
//	JWT_ACCESS_SECRET   access token signing secret
//	JWT_REFRESH_SECRET  refresh token signing secret
//	JWT_ACCESS_TTL      access token lifetime (Go duration, e.g. "15m")
//	JWT_REFRESH_TTL     refresh token lifetime (Go duration, e.g. "168h")
//	PASSWORD_HASH_COST  bcrypt work factor
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_ACCESS_SECRET"); v != "" {
		config.AccessTokenSecret = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET"); v != "" {
		config.RefreshTokenSecret = v
	}
	if v := os.Getenv("JWT_ACCESS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v := os.Getenv("JWT_REFRESH_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
	if v := os.Getenv("PASSWORD_HASH_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.PasswordHashCost = n
		}
	}
}
