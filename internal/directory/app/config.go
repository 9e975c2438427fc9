package app

import (
	"os"
	"strings"
)

type Config struct {
	SiteName     string // Issuer on TOTP provisioning URIs (default: SalesAholicsDeals)
	StoreDriver  string // Durable store driver: sqlite, bolt, memory (default: sqlite)
	DatabaseFile string // Path to the store file (default: ./dealsdir.db)
	Credentials  string // Credential scheme: plaintext, argon2 (default: plaintext)
	Telemetry    bool   // Forward product events to the telemetry sinks (default: off)
	Env          string // Environment (dev, staging, prod) (default: dev)
	LogLevel     string // Log level (debug, info, warn, error) (default: info)
	LogFormat    string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		SiteName:     getEnvOrDefault("DEALSDIR_SITE_NAME", "SalesAholicsDeals"),
		StoreDriver:  getEnvOrDefault("DEALSDIR_STORE_DRIVER", "sqlite"),
		DatabaseFile: getEnvOrDefault("DEALSDIR_DATABASE_FILE", "dealsdir.db"),
		Credentials:  getEnvOrDefault("DEALSDIR_CREDENTIALS", "plaintext"),
		Telemetry:    getEnvBoolOrDefault("DEALSDIR_TELEMETRY", false),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
