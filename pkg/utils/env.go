package utils

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))

	if v == "" {
		return defaultValue
	}

	return v
}

// GetEnvBool parses key as a bool, falling back to defaultValue when the
// variable is unset or malformed.
func GetEnvBool(key string, defaultValue bool) bool {
	raw := GetEnvTrimmed(key)
	if raw == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}

	return b
}
