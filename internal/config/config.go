// Package config reads application configuration from environment variables
package config

import (
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Paths  PathConfig
	Charts ChartConfig
	Log    LogConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	DataFile  string
	OutputDir string
}

// ChartConfig holds chart rendering settings
type ChartConfig struct {
	Width  int
	Height int
}

// LogConfig holds logging settings
type LogConfig struct {
	Development bool
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset
func Load() *Config {
	return &Config{
		Paths: PathConfig{
			DataFile:  getEnvOrDefault("CLARITY_DATA_FILE", ""),
			OutputDir: getEnvOrDefault("CLARITY_OUTPUT_DIR", "."),
		},
		Charts: ChartConfig{
			Width:  getEnvIntOrDefault("CLARITY_CHART_WIDTH", 900),
			Height: getEnvIntOrDefault("CLARITY_CHART_HEIGHT", 500),
		},
		Log: LogConfig{
			Development: getEnvBoolOrDefault("CLARITY_LOG_DEV", false),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
