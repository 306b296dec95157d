package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Engine EngineConfig
	Ingest IngestConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

// StoreConfig holds record-store configuration
type StoreConfig struct {
	Path string
}

// EngineConfig holds extraction-engine configuration
type EngineConfig struct {
	TuningPath string // optional JSON tuning file; empty means built-in defaults
	Workers    int
}

// IngestConfig holds drop-folder watching configuration
type IngestConfig struct {
	WatchDir      string // empty disables watching
	WatchDebounce time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_MB", 32)) * 1024 * 1024,
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "./surveys.db"),
		},
		Engine: EngineConfig{
			TuningPath: getEnv("ENGINE_TUNING_PATH", ""),
			Workers:    getEnvAsInt("ENGINE_WORKERS", 4),
		},
		Ingest: IngestConfig{
			WatchDir:      getEnv("WATCH_DIR", ""),
			WatchDebounce: getEnvAsDuration("WATCH_DEBOUNCE", 2*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Store.Path == "" {
		return NewAppError("CONFIG_ERROR", "STORE_PATH is required", ErrInvalidInput)
	}
	if c.Engine.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "ENGINE_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
