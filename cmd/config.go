package cmd

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	JWTSecret              string
	TokenTTL               time.Duration
	KafkaHost              string
	KafkaOrderChangedTopic string
	RedisAddr              string
	LoginRateLimit         float64
	LoginBurst             int
	RequestTimeout         time.Duration
	SeedDemo               bool
}

// LoadConfig reads .env when present and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}

	return Config{
		HTTPPort:               envOr("HTTP_PORT", "3000"),
		DBHost:                 envOr("DB_HOST", "localhost"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 envOr("DB_USER", "postgres"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 envOr("DB_NAME", "storefront"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		TokenTTL:               durationOr("TOKEN_TTL", 24*time.Hour),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: envOr("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		LoginRateLimit:         floatOr("LOGIN_RATE_LIMIT", 1),
		LoginBurst:             intOr("LOGIN_BURST", 5),
		RequestTimeout:         durationOr("REQUEST_TIMEOUT", 10*time.Second),
		SeedDemo:               boolOr("SEED_DEMO", false),
	}
}

// DSN is the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func floatOr(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil && i > 0 {
		return i
	}
	return fallback
}

func boolOr(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}
