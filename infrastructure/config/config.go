package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAdminPassword is the development fallback for ADMIN_PASSWORD.
// It is rejected in production.
const DefaultAdminPassword = "admin123"

// Cache providers
const (
	CacheProviderFile   = "file"
	CacheProviderRedis  = "redis"
	CacheProviderMemory = "memory"
)

// Docstore backends
const (
	DocstoreBackendPostgres = "postgres"
	DocstoreBackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress   string        `yaml:"server_address"`
	Environment     string        `yaml:"environment"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Remote store
	RemoteEndpoint string        `yaml:"remote_endpoint"`
	RemoteTimeout  time.Duration `yaml:"remote_timeout"`
	SaveTimeout    time.Duration `yaml:"save_timeout"`
	Breaker        BreakerConfig `yaml:"breaker"`

	// Durable cache
	CacheProvider string `yaml:"cache_provider"`
	CacheDir      string `yaml:"cache_dir"`
	CacheKey      string `yaml:"cache_key"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Administration
	AdminPassword string `yaml:"admin_password"`
	IDStrategy    string `yaml:"id_strategy"`

	// Feature flags
	EnableMetrics      bool     `yaml:"enable_metrics"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// Document store server
	DocstoreAddress  string `yaml:"docstore_address"`
	DocstoreBackend  string `yaml:"docstore_backend"`
	DatabaseURL      string `yaml:"database_url"`
	DatabaseMaxConns int    `yaml:"database_max_conns"`
	DocumentKey      string `yaml:"document_key"`

	// LoadedFrom lists the sources applied, lowest priority first
	LoadedFrom []string `yaml:"-"`
}

// BreakerConfig holds the circuit breaker settings for the remote store
type BreakerConfig struct {
	MaxRequests      int           `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failure_threshold"`
	MinRequests      int           `yaml:"min_requests"`
}

// Default returns the configuration used before any file or environment is applied
func Default() *Config {
	return &Config{
		ServerAddress:   ":8080",
		Environment:     "development",
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		RemoteTimeout:   5 * time.Second,
		SaveTimeout:     10 * time.Second,
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         60 * time.Second,
			Timeout:          30 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      3,
		},
		CacheProvider:      CacheProviderFile,
		CacheDir:           "data",
		CacheKey:           "venus_dialogics_db_v1",
		RedisAddr:          "localhost:6379",
		AdminPassword:      DefaultAdminPassword,
		IDStrategy:         "timestamp",
		EnableMetrics:      true,
		CORSAllowedOrigins: []string{"*"},
		DocstoreAddress:    ":8081",
		DocstoreBackend:    DocstoreBackendMemory,
		DatabaseMaxConns:   5,
		DocumentKey:        "venus_dialogics_db_v1",
		LoadedFrom:         []string{"defaults"},
	}
}

// LoadConfig loads configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnvironment()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.LoadedFrom = append(c.LoadedFrom, path)
	return nil
}

func (c *Config) loadEnvironment() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.RemoteEndpoint = getEnv("REMOTE_ENDPOINT", c.RemoteEndpoint)
	c.RemoteTimeout = getEnvDuration("REMOTE_TIMEOUT", c.RemoteTimeout)
	c.SaveTimeout = getEnvDuration("SAVE_TIMEOUT", c.SaveTimeout)
	c.Breaker.MaxRequests = getEnvInt("REMOTE_BREAKER_MAX_REQUESTS", c.Breaker.MaxRequests)
	c.Breaker.Interval = getEnvDuration("REMOTE_BREAKER_INTERVAL", c.Breaker.Interval)
	c.Breaker.Timeout = getEnvDuration("REMOTE_BREAKER_TIMEOUT", c.Breaker.Timeout)
	c.Breaker.FailureThreshold = getEnvFloat("REMOTE_BREAKER_FAILURE_THRESHOLD", c.Breaker.FailureThreshold)
	c.Breaker.MinRequests = getEnvInt("REMOTE_BREAKER_MIN_REQUESTS", c.Breaker.MinRequests)

	c.CacheProvider = getEnv("CACHE_PROVIDER", c.CacheProvider)
	c.CacheDir = getEnv("CACHE_DIR", c.CacheDir)
	c.CacheKey = getEnv("CACHE_KEY", c.CacheKey)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)

	c.AdminPassword = getEnv("ADMIN_PASSWORD", c.AdminPassword)
	c.IDStrategy = getEnv("ID_STRATEGY", c.IDStrategy)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)

	c.DocstoreAddress = getEnv("DOCSTORE_ADDRESS", c.DocstoreAddress)
	c.DocstoreBackend = getEnv("DOCSTORE_BACKEND", c.DocstoreBackend)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.DatabaseMaxConns = getEnvInt("DATABASE_MAX_CONNS", c.DatabaseMaxConns)
	c.DocumentKey = getEnv("DOCUMENT_KEY", c.DocumentKey)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.CacheProvider {
	case CacheProviderFile:
		if c.CacheDir == "" {
			return fmt.Errorf("CACHE_DIR is required for the file cache")
		}
	case CacheProviderRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis cache")
		}
	case CacheProviderMemory:
	default:
		return fmt.Errorf("unknown CACHE_PROVIDER %q", c.CacheProvider)
	}

	if c.CacheKey == "" {
		return fmt.Errorf("CACHE_KEY is required")
	}

	switch c.DocstoreBackend {
	case DocstoreBackendMemory:
	case DocstoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres docstore")
		}
	default:
		return fmt.Errorf("unknown DOCSTORE_BACKEND %q", c.DocstoreBackend)
	}

	if c.Breaker.FailureThreshold <= 0 || c.Breaker.FailureThreshold > 1 {
		return fmt.Errorf("REMOTE_BREAKER_FAILURE_THRESHOLD must be in (0, 1]")
	}

	if c.IsProduction() {
		if c.AdminPassword == "" || c.AdminPassword == DefaultAdminPassword {
			return fmt.Errorf("ADMIN_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings such as "5s" or "250ms"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping blank entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
