package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first when present;
// already-exported variables win over .env entries (godotenv semantics).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setString(&cfg.BackendConfigFile, "MILTRACK_BACKEND_CONFIG")
	setString(&cfg.DatabaseDSN, "MILTRACK_DATABASE_DSN")
	setString(&cfg.MongoURI, "MILTRACK_MONGO_URI")
	setString(&cfg.MongoDatabase, "MILTRACK_MONGO_DATABASE")
	setString(&cfg.S3Bucket, "MILTRACK_S3_BUCKET")
	setString(&cfg.S3Region, "MILTRACK_S3_REGION")
	setString(&cfg.S3BaseEndpoint, "MILTRACK_S3_ENDPOINT")
	setString(&cfg.S3AccessKey, "MILTRACK_S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "MILTRACK_S3_SECRET_KEY")
	setString(&cfg.JWTSecret, "MILTRACK_JWT_SECRET")

	if v, ok := os.LookupEnv("MILTRACK_DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v, ok := os.LookupEnv("MILTRACK_ACCESS_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("MILTRACK_MOCK_LATENCY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MockLatency = d
		}
	}
}
