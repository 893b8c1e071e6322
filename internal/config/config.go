// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Generation defaults
const (
	DefaultTarget    = "go"
	DefaultRootName  = "Response"
	DefaultGoPackage = "model"
)

// Processing safety cap defaults
const (
	ResultCacheMaxItemsValue = 256
	MaxInputBytesValue       = 8 << 20
	MaxSamplesValue          = 1000
	WorkersValue             = 4
)

// Config holds all configuration for the MCP server and the CLI.
type Config struct {
	Target        string   // TYPEGEN_TARGET, default "go"
	RootName      string   // TYPEGEN_ROOT_NAME, default "Response"
	GoPackage     string   // TYPEGEN_GO_PACKAGE, default "model"
	ReservedNames []string // TYPEGEN_RESERVED_NAMES, comma separated, default none

	// Processing safety caps
	ResultCacheMaxItems int // RESULT_CACHE_MAX_ITEMS, default 256
	MaxInputBytes       int // MAX_INPUT_BYTES, default 8 MiB
	MaxSamples          int // MAX_SAMPLES, default 1000
	Workers             int // WORKERS, default 4

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Target:        getEnvString("TYPEGEN_TARGET", DefaultTarget),
		RootName:      getEnvString("TYPEGEN_ROOT_NAME", DefaultRootName),
		GoPackage:     getEnvString("TYPEGEN_GO_PACKAGE", DefaultGoPackage),
		ReservedNames: getEnvList("TYPEGEN_RESERVED_NAMES"),

		ResultCacheMaxItems: getEnvPositiveInt("RESULT_CACHE_MAX_ITEMS", ResultCacheMaxItemsValue),
		MaxInputBytes:       getEnvPositiveInt("MAX_INPUT_BYTES", MaxInputBytesValue),
		MaxSamples:          getEnvPositiveInt("MAX_SAMPLES", MaxSamplesValue),
		Workers:             getEnvPositiveInt("WORKERS", WorkersValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
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

// getEnvPositiveInt is getEnvInt for caps where zero or less makes no sense.
func getEnvPositiveInt(key string, defaultVal int) int {
	if i := getEnvInt(key, defaultVal); i > 0 {
		return i
	}
	return defaultVal
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
