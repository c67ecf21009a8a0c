package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Addr       string
	DBPath     string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func Load() Config {
	addr := envString("BULLETIN_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":3000"
		}
	}
	return Config{
		Addr:   addr,
		DBPath: envString("BULLETIN_DB", "bulletin.db"),
		// Dev-only default; deployments must set BULLETIN_JWT_SECRET.
		JWTSecret:  envString("BULLETIN_JWT_SECRET", "dev-signing-secret"),
		TokenTTL:   envDuration("BULLETIN_TOKEN_TTL", 24*time.Hour),
		BcryptCost: envInt("BULLETIN_BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
