package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers understood by the serve and seed commands.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all application configuration. Values come from, in order of
// precedence: environment variables (optionally from .env), the YAML file
// named by RENTAI_CONFIG, and built-in defaults.
type Config struct {
	HTTPAddr   string        `yaml:"http_addr"`
	BaseURL    string        `yaml:"base_url"`
	SessionTTL time.Duration `yaml:"session_ttl"`

	StoreDriver string `yaml:"store_driver"`
	SQLitePath  string `yaml:"sqlite_path"`

	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     string `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresDB       string `yaml:"postgres_db"`
	PostgresSSLMode  string `yaml:"postgres_sslmode"`

	SuggestionInterval time.Duration `yaml:"suggestion_interval"`

	MaxConcurrency int `yaml:"max_concurrency"`
	RateLimitMs    int `yaml:"rate_limit_ms"`
	MaxRetries     int `yaml:"max_retries"`

	CSVPath     string `yaml:"csv_path"`
	SnapshotDir string `yaml:"snapshot_dir"`
	ChromeBin   string `yaml:"chrome_bin"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		HTTPAddr:   ":8080",
		BaseURL:    "http://localhost:8080",
		SessionTTL: 30 * time.Minute,

		StoreDriver: StoreMemory,
		SQLitePath:  "./data/rentai.db",

		PostgresHost:     "localhost",
		PostgresPort:     "5432",
		PostgresUser:     "rentai",
		PostgresPassword: "rentai123",
		PostgresDB:       "rental_db",
		PostgresSSLMode:  "disable",

		SuggestionInterval: 3 * time.Second,

		MaxConcurrency: 3,
		RateLimitMs:    250,
		MaxRetries:     3,

		CSVPath:     "./output/listings.csv",
		SnapshotDir: "./output/snapshots",
	}
}

// Load reads the .env file, the optional YAML file and the environment and
// returns a populated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := Default()
	if path := os.Getenv("RENTAI_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.BaseURL = getEnv("BASE_URL", c.BaseURL)
	c.SessionTTL = getEnvDuration("SESSION_TTL", c.SessionTTL)

	c.StoreDriver = getEnv("STORE_DRIVER", c.StoreDriver)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)

	c.PostgresHost = getEnv("POSTGRES_HOST", c.PostgresHost)
	c.PostgresPort = getEnv("POSTGRES_PORT", c.PostgresPort)
	c.PostgresUser = getEnv("POSTGRES_USER", c.PostgresUser)
	c.PostgresPassword = getEnv("POSTGRES_PASSWORD", c.PostgresPassword)
	c.PostgresDB = getEnv("POSTGRES_DB", c.PostgresDB)
	c.PostgresSSLMode = getEnv("POSTGRES_SSLMODE", c.PostgresSSLMode)

	c.SuggestionInterval = getEnvDuration("SUGGESTION_INTERVAL", c.SuggestionInterval)

	c.MaxConcurrency = getEnvInt("MAX_CONCURRENCY", c.MaxConcurrency)
	c.RateLimitMs = getEnvInt("RATE_LIMIT_MS", c.RateLimitMs)
	c.MaxRetries = getEnvInt("MAX_RETRIES", c.MaxRetries)

	c.CSVPath = getEnv("CSV_PATH", c.CSVPath)
	c.SnapshotDir = getEnv("SNAPSHOT_DIR", c.SnapshotDir)
	c.ChromeBin = getEnv("CHROME_BIN", c.ChromeBin)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
	}
	if c.SuggestionInterval <= 0 {
		return fmt.Errorf("config: suggestion interval must be positive, got %v", c.SuggestionInterval)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session ttl must be positive, got %v", c.SessionTTL)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// RateLimit is RateLimitMs as a duration.
func (c *Config) RateLimit() time.Duration {
	return time.Duration(c.RateLimitMs) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
