package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Env        string
	Port       int
	Mongo      MongoConfig
	CORS       []string
	BcryptCost int

	// optional bootstrap admin, seeded at startup when both are set
	AdminEmail    string
	AdminPassword string

	OtelEndpoint string
}

type MongoConfig struct {
	URI    string
	DBName string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 5000)

	return Config{
		Env:  env,
		Port: port,
		Mongo: MongoConfig{
			URI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			DBName: getEnv("DB_NAME", "mtsBlogDB"),
		},
		CORS:       splitList(getEnv("CORS_ORIGINS", "")),
		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)

		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)

			return fallback
		}

		return num
	}
	return fallback
}
