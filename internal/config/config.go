package config

import (
	"os"
	"strings"
)

type Config struct {
	Port           string
	DatabaseURL    string // empty selects the in-memory seed store
	JWTSecret      string
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8082"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS",
			"http://localhost:5173,https://dashboard.restohub.rw")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
