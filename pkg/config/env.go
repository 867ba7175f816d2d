package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnv returns the value of key, or def when it is unset or blank.
func GetEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

// GetEnvInt returns key parsed as an int, or def when unset or malformed.
func GetEnvInt(key string, def int) int {
	return parseEnv(key, def, strconv.Atoi)
}

// GetEnvFloat returns key parsed as a float64, or def when unset or malformed.
func GetEnvFloat(key string, def float64) float64 {
	return parseEnv(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// GetEnvDuration returns key parsed with time.ParseDuration, or def when unset or malformed.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return parseEnv(key, def, time.ParseDuration)
}

// GetEnvBool returns key parsed with strconv.ParseBool, or def when unset or malformed.
func GetEnvBool(key string, def bool) bool {
	return parseEnv(key, def, strconv.ParseBool)
}

func parseEnv[T any](key string, def T, parse func(string) (T, error)) T {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	v, err := parse(val)
	if err != nil {
		return def
	}
	return v
}
