package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ClassifierLexicon     = "lexicon"
	ClassifierHuggingFace = "huggingface"

	devJWTSecret = "moodbite-dev-secret-change-me"
)

// Config holds all application configuration
type Config struct {
	ServerAddress string
	Environment   string

	// Database
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	SQLitePath  string

	// Authentication
	JWTSecret string
	JWTTTL    time.Duration

	// Logging
	LogLevel string
	LogFile  string

	// Mood classification
	Classifier         string
	HuggingFaceToken   string
	HuggingFaceBaseURL string

	// Entry limits
	InsightWindowEntries   int
	DashboardRecentEntries int
	ChatHistoryEntries     int
	ListDefaultEntries     int

	// Analytics days are cut at midnight in this zone
	Timezone string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// a missing .env is fine; the process environment is authoritative
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		DBDriver:    getEnv("DB_DRIVER", DriverSQLite),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "mood_bite"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "mood_bite.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 72)) * time.Hour,

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		Classifier:         getEnv("CLASSIFIER", ClassifierLexicon),
		HuggingFaceToken:   getEnv("HUGGINGFACE_TOKEN", ""),
		HuggingFaceBaseURL: getEnv("HUGGINGFACE_BASE_URL", "https://api-inference.huggingface.co"),

		InsightWindowEntries:   getEnvInt("INSIGHT_WINDOW_ENTRIES", 20),
		DashboardRecentEntries: getEnvInt("DASHBOARD_RECENT_ENTRIES", 5),
		ChatHistoryEntries:     getEnvInt("CHAT_HISTORY_ENTRIES", 10),
		ListDefaultEntries:     getEnvInt("LIST_DEFAULT_ENTRIES", 20),

		Timezone: getEnv("TIMEZONE", "UTC"),
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the combination of settings is usable
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.Classifier {
	case ClassifierLexicon:
	case ClassifierHuggingFace:
		if c.HuggingFaceToken == "" {
			return errors.New("HUGGINGFACE_TOKEN is required for the huggingface classifier")
		}
	default:
		return fmt.Errorf("unsupported CLASSIFIER %q", c.Classifier)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}
	if c.InsightWindowEntries <= 0 || c.DashboardRecentEntries <= 0 ||
		c.ChatHistoryEntries <= 0 || c.ListDefaultEntries <= 0 {
		return errors.New("entry limits must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the analytics time zone; Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PostgresDSN builds the connection string from its parts unless DATABASE_URL is set.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
