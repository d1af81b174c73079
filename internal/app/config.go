package app

import (
	"time"

	"github.com/investfolio/investfolio-backend/internal/platform/envutil"
)

type Config struct {
	JWTSecretKey string
	// AccessTokenTTL of zero mints tokens without an expiry claim.
	AccessTokenTTL time.Duration
	Port           string
	LogMode        string
	Environment    string
	Version        string
}

func LoadConfig() Config {
	accessTokenTTLSeconds := envutil.Int("ACCESS_TOKEN_TTL", 0)
	return Config{
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		Port:           envutil.String("PORT", "8080"),
		LogMode:        envutil.String("LOG_MODE", "development"),
		Environment:    envutil.String("APP_ENV", "development"),
		Version:        envutil.String("APP_VERSION", "dev"),
	}
}
