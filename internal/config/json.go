package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/miltrack/miltrack/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given as strings understood by time.ParseDuration ("15m", "2s"). Pointer
// fields distinguish "absent" from zero so a partial file only overrides
// what it names.
type JsonConfig struct {
	BackendConfigFile   *string `json:"backend_config_file"`
	Debug               *bool   `json:"debug"`
	DatabaseDSN         *string `json:"database_dsn"`
	MongoURI            *string `json:"mongo_uri"`
	MongoDatabase       *string `json:"mongo_database"`
	S3Bucket            *string `json:"s3_bucket"`
	S3Region            *string `json:"s3_region"`
	S3BaseEndpoint      *string `json:"s3_base_endpoint"`
	S3AccessKey         *string `json:"s3_access_key"`
	S3SecretKey         *string `json:"s3_secret_key"`
	JWTSecret           *string `json:"jwt_secret"`
	AccessTokenValidity *string `json:"access_token_validity"`
	MockLatency         *string `json:"mock_latency"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. No file flag means no overlay. Read or unmarshal errors
// panic (startup-time misconfiguration is not recoverable).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&cfg.BackendConfigFile, jc.BackendConfigFile)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.MongoURI, jc.MongoURI)
	setString(&cfg.MongoDatabase, jc.MongoDatabase)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.JWTSecret, jc.JWTSecret)

	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	if jc.AccessTokenValidity != nil {
		if d, err := time.ParseDuration(*jc.AccessTokenValidity); err == nil {
			cfg.AccessTokenValidityDuration = d
		}
	}
	if jc.MockLatency != nil {
		if d, err := time.ParseDuration(*jc.MockLatency); err == nil {
			cfg.MockLatency = d
		}
	}
}
