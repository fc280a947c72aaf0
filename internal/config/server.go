package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	BaseURL        string
	RequestTimeout time.Duration
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig() ServerConfig {
	return LoadServerConfigFrom(os.Getenv)
}

// LoadServerConfigFrom loads server configuration using the given lookup
func LoadServerConfigFrom(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	baseURL := strings.TrimRight(getenv("BASE_URL"), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", port)
	}

	return ServerConfig{
		Port:           port,
		BaseURL:        baseURL,
		RequestTimeout: secondsOrDefault(getenv, "REQUEST_TIMEOUT_SECONDS", 30*time.Second),
	}
}

// secondsOrDefault parses a positive number of seconds, falling back to def
// when the variable is unset or invalid
func secondsOrDefault(getenv func(string) string, key string, def time.Duration) time.Duration {
	raw := getenv(key)
	if raw == "" {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
