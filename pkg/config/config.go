package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	AppEnv       string
	IsProduction bool

	Port        string
	ClientURL   string
	DatabaseDSN string
	JWTSecret   string

	// Direct-upload provider credentials (ImageKit-style).
	UploadEndpoint   string
	UploadPublicKey  string
	UploadPrivateKey string

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
)

func init() {
	AppEnv = os.Getenv("APP_ENV")

	// .env is a development convenience only; in production everything
	// comes from the host environment.
	if AppEnv != "production" {
		_ = godotenv.Load()
	}

	IsProduction = AppEnv == "production"

	Port = getenvOr("PORT", "3000")
	ClientURL = os.Getenv("CLIENT_URL")
	DatabaseDSN = os.Getenv("DATABASE_DSN")

	JWTSecret = os.Getenv("JWT_SECRET_KEY")
	if JWTSecret == "" {
		if IsProduction {
			log.Fatal("JWT_SECRET_KEY must be set in production")
		}
		JWTSecret = "dev-secret"
	}

	UploadEndpoint = os.Getenv("IMAGE_KIT_ENDPOINT")
	UploadPublicKey = os.Getenv("IMAGE_KIT_PUBLIC_KEY")
	UploadPrivateKey = os.Getenv("IMAGE_KIT_PRIVATE_KEY")

	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5)

	log.WithFields(log.Fields{
		"appEnv":        AppEnv,
		"port":          Port,
		"clientURL":     ClientURL,
		"uploadSigning": UploadPrivateKey != "",
	}).Info("config loaded")
}

func getenvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
