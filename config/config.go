package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Firebase FirebaseConfig
	Matching MatchingConfig
	Notify   NotifyConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type NATSConfig struct {
	URL        string
	Subject    string
	QueueGroup string
}

type FirebaseConfig struct {
	CredentialsPath string
}

// MatchingConfig holds the thresholds of both matching paths. Structured
// thresholds are fractions in [0,1]; AI thresholds are integer percents.
type MatchingConfig struct {
	InclusionThreshold  float64
	NotifyThreshold     float64
	MaxCorpus           int
	Timeout             time.Duration
	DispatchConcurrency int

	AIThreshold       int
	AILimit           int
	AIDescriptionMode string
}

type NotifyConfig struct {
	DedupEnabled  bool
	DedupTTL      time.Duration
	RatePerSecond float64
	RetentionDays int
	PurgeSchedule string
}

type AppConfig struct {
	ServiceName string
	Environment string
	LogLevel    string
	LogFile     string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:4200", "http://localhost:4201", "http://localhost:4202"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		NATS: NATSConfig{
			URL:        getEnv("NATS_URL", ""),
			Subject:    getEnv("NATS_SUBJECT", "projects.created"),
			QueueGroup: getEnv("NATS_QUEUE_GROUP", "project-matcher"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Matching: MatchingConfig{
			InclusionThreshold:  getEnvAsFloat("MATCH_INCLUSION_THRESHOLD", 0.3),
			NotifyThreshold:     getEnvAsFloat("MATCH_NOTIFY_THRESHOLD", 0.6),
			MaxCorpus:           getEnvAsInt("MATCH_MAX_CORPUS", 5000),
			Timeout:             getEnvAsDuration("MATCH_TIMEOUT", 5*time.Second),
			DispatchConcurrency: getEnvAsInt("MATCH_DISPATCH_CONCURRENCY", 4),
			// scores must exceed the threshold, so 49 admits 50% and above
			AIThreshold:       getEnvAsInt("AI_MATCH_THRESHOLD", 49),
			AILimit:           getEnvAsInt("AI_MATCH_LIMIT", 10),
			AIDescriptionMode: strings.ToLower(strings.TrimSpace(getEnv("AI_MATCH_DESCRIPTION_MODE", "rich"))),
		},
		Notify: NotifyConfig{
			DedupEnabled:  getEnvAsBool("NOTIFY_DEDUP_ENABLED", false),
			DedupTTL:      getEnvAsDuration("NOTIFY_DEDUP_TTL", 30*24*time.Hour),
			RatePerSecond: getEnvAsFloat("NOTIFY_RATE_PER_SEC", 0),
			RetentionDays: getEnvAsInt("NOTIFY_RETENTION_DAYS", 90),
			PurgeSchedule: getEnv("NOTIFY_PURGE_SCHEDULE", "0 0 3 * * *"),
		},
		App: AppConfig{
			ServiceName: getEnv("SERVICE_NAME", "project-match"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFile:     getEnv("LOG_FILE", ""),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	m := c.Matching
	if m.InclusionThreshold < 0 || m.InclusionThreshold > 1 {
		return fmt.Errorf("MATCH_INCLUSION_THRESHOLD must be within [0,1], got %v", m.InclusionThreshold)
	}
	if m.NotifyThreshold < 0 || m.NotifyThreshold > 1 {
		return fmt.Errorf("MATCH_NOTIFY_THRESHOLD must be within [0,1], got %v", m.NotifyThreshold)
	}
	if m.NotifyThreshold < m.InclusionThreshold {
		return fmt.Errorf("MATCH_NOTIFY_THRESHOLD (%v) is below MATCH_INCLUSION_THRESHOLD (%v)", m.NotifyThreshold, m.InclusionThreshold)
	}
	if m.AIThreshold < 0 || m.AIThreshold > 100 {
		return fmt.Errorf("AI_MATCH_THRESHOLD must be within [0,100], got %d", m.AIThreshold)
	}
	if m.AILimit <= 0 {
		return fmt.Errorf("AI_MATCH_LIMIT must be positive, got %d", m.AILimit)
	}
	if m.AIDescriptionMode != "rich" && m.AIDescriptionMode != "simple" {
		return fmt.Errorf("AI_MATCH_DESCRIPTION_MODE must be rich or simple, got %q", m.AIDescriptionMode)
	}
	if m.MaxCorpus <= 0 {
		return fmt.Errorf("MATCH_MAX_CORPUS must be positive, got %d", m.MaxCorpus)
	}
	if c.Notify.DedupEnabled && c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when NOTIFY_DEDUP_ENABLED is set")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	out := make([]string, 0, 4)
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
