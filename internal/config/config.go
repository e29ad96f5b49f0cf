// Package config resolves defaults for the partstock commands from the
// environment and an optional .env file. Command-line flags override them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

const (
	defaultDBPath  = "partstock.sqlite3"
	defaultAddr    = ":8080"
	defaultURL     = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
)

// Config holds the resolved defaults for every subcommand.
type Config struct {
	// table service
	DBPath      string
	Addr        string
	CORSOrigins []string

	// client side
	URL     string
	Key     string
	Timeout time.Duration

	// optional log file; empty means stdout/stderr only
	LogPath string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Load reads envFile into the process environment if it exists, without
// overriding variables that are already set, and returns the resolved
// configuration. An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	timeout, err := getEnvDurationOrDefault("PARTSTOCK_TIMEOUT", defaultTimeout)
	if err != nil {
		return Config{}, err
	}

	return Config{
		DBPath:      getEnvOrDefault("PARTSTOCK_DB", defaultDBPath),
		Addr:        getEnvOrDefault("PARTSTOCK_ADDR", defaultAddr),
		CORSOrigins: splitList(os.Getenv("PARTSTOCK_CORS_ORIGINS")),
		URL:         getEnvOrDefault("PARTSTOCK_URL", defaultURL),
		Key:         os.Getenv("PARTSTOCK_KEY"),
		Timeout:     timeout,
		LogPath:     os.Getenv("PARTSTOCK_LOG"),
	}, nil
}
