package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port            string
	AllowedOrigins  []string
	Workers         int
	BasicDelay      time.Duration
	SummaryDelay    time.Duration
	FailureRate     float64
	MaxUploadBytes  int64
	RequeueSchedule string
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		Workers:         getEnvInt("EXTRACTION_WORKERS", 2),
		BasicDelay:      getEnvDuration("BASIC_EXTRACTION_DELAY", 3*time.Second),
		SummaryDelay:    getEnvDuration("SUMMARY_EXTRACTION_DELAY", 3*time.Second),
		FailureRate:     getEnvFloat("EXTRACTION_FAILURE_RATE", 0),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 64<<20),
		RequeueSchedule: getEnv("REQUEUE_SCHEDULE", "@every 1m"),
	}
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("%s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvInt64(key string, def int64) int64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logrus.Warnf("%s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.Warnf("%s=%q not a float, using default %v", key, v, def)
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.Warnf("%s=%q not a duration, using default %s", key, v, def)
		return def
	}
	return d
}
