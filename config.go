package main

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultWorkerCount      = 3
	defaultMaxDocumentBytes = 16 << 20
)

type Config struct {
	DBURL            string
	RabbitMQURL      string
	R2               R2Config
	WorkerCount      int
	MaxDocumentBytes int64
	LogLevel         string
	LogFormat        string
	LexiconEnabled   bool
}

// LoadConfig reads the worker configuration from the environment. The first
// missing required variable is named in the error.
func LoadConfig() (Config, error) {
	cfg := Config{}
	required := []struct {
		key string
		dst *string
	}{
		{"DB_URL", &cfg.DBURL},
		{"RABBITMQ_URL", &cfg.RabbitMQURL},
		{"R2_ACCCOUNT_ID", &cfg.R2.AccountID},
		{"R2_BUCKET", &cfg.R2.Bucket},
		{"R2_SECRET_KEY", &cfg.R2.SecretKey},
		{"R2_ACCESS_KEY", &cfg.R2.AccessKey},
	}
	for _, r := range required {
		v := os.Getenv(r.key)
		if v == "" {
			return Config{}, fmt.Errorf("empty %s in environment", r.key)
		}
		*r.dst = v
	}

	workers, err := getEnvInt("WORKER_COUNT", defaultWorkerCount)
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerCount = int(workers)

	if cfg.MaxDocumentBytes, err = getEnvInt("MAX_DOCUMENT_BYTES", defaultMaxDocumentBytes); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	if cfg.LexiconEnabled, err = strconv.ParseBool(getEnv("LEXICON_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("invalid LEXICON_ENABLED: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", key, n)
	}
	return n, nil
}
