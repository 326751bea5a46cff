package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN      string
	ServerPort string
	AppEnv     string

	JWTSecret      string
	AccessTokenTTL time.Duration

	CORSOrigins []string

	AdminAccountName  string
	AdminPassword     string
	AdminOrganization string

	SeedFile string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:             os.Getenv("DB_DSN"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		AppEnv:            getEnv("APP_ENV", "development"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTL:    30 * time.Minute,
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AdminAccountName:  getEnv("ADMIN_ACCOUNT_NAME", "admin_user"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "password_admin"),
		AdminOrganization: getEnv("ADMIN_ORGANIZATION", "Default Org"),
		SeedFile:          os.Getenv("SEED_FILE"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	if raw := os.Getenv("ACCESS_TOKEN_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return nil, errors.New("ACCESS_TOKEN_TTL_MINUTES must be a positive integer")
		}
		cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
