// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
)

// Defaults for processing limits.
const (
	DefaultExtractWorkersValue  = 8
	DefaultSchemaCacheMaxValue  = 64
	DefaultQueryLimitValue      = 100
	DefaultNodeLimitValue       = 200
	DefaultExamplesPerNodeValue = 3
)

// Config holds all configuration for the schemex CLI and MCP server.
type Config struct {
	ExtractWorkers      int // EXTRACT_WORKERS, default 8
	SchemaCacheMaxItems int // SCHEMA_CACHE_MAX_ITEMS, default 64
	DefaultQueryLimit   int // DEFAULT_QUERY_LIMIT, default 100
	DefaultNodeLimit    int // DEFAULT_NODE_LIMIT, default 200
	ExamplesPerNode     int // EXAMPLES_PER_NODE, default 3

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ExtractWorkers:      getEnvInt("EXTRACT_WORKERS", DefaultExtractWorkersValue),
		SchemaCacheMaxItems: getEnvInt("SCHEMA_CACHE_MAX_ITEMS", DefaultSchemaCacheMaxValue),
		DefaultQueryLimit:   getEnvInt("DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),
		DefaultNodeLimit:    getEnvInt("DEFAULT_NODE_LIMIT", DefaultNodeLimitValue),
		ExamplesPerNode:     getEnvInt("EXAMPLES_PER_NODE", DefaultExamplesPerNodeValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
