package main

import (
	"fmt"
	"os"

	"storefront-backend/storage"
)

// Config holds all environment variables for the server.
type Config struct {
	Port    string // HTTP port (default: 8080)
	Env     string // "production" or "development"
	Backend string // "mongo", "postgres" or "memory"

	MongoURI    string // required when Backend is "mongo"
	MongoDB     string // database name (default: storefront)
	PostgresDSN string // required when Backend is "postgres"

	RedisURL string // optional catalog cache

	S3 storage.S3Config // optional image storage; off when Bucket is empty
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads the environment into a Config and validates the backend
// selection.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        envOr("PORT", "8080"),
		Env:         envOr("APP_ENV", "development"),
		Backend:     envOr("BACKEND", "memory"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     envOr("MONGO_DB", "storefront"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		RedisURL:    os.Getenv("REDIS_URL"),
		S3: storage.S3Config{
			Bucket:        os.Getenv("AWS_S3_BUCKET"),
			Region:        envOr("AWS_REGION", "us-east-1"),
			Endpoint:      os.Getenv("AWS_S3_ENDPOINT"),
			AccessKey:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
			PublicBaseURL: os.Getenv("AWS_S3_PUBLIC_URL"),
		},
	}

	switch cfg.Backend {
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required when BACKEND=mongo")
		}
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required when BACKEND=postgres")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("unknown BACKEND %q (expected mongo, postgres or memory)", cfg.Backend)
	}
	return cfg, nil
}
