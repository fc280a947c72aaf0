package config

import (
	"fmt"
	"strconv"
)

// RedisConfig holds configuration for the Redis snapshot store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoadRedisConfig loads Redis configuration from environment variables
func LoadRedisConfig(getenv func(string) string) (*RedisConfig, error) {
	config := &RedisConfig{
		Addr:     getenv("REDIS_ADDR"),
		Password: getenv("REDIS_PASSWORD"),
	}

	if config.Addr == "" {
		config.Addr = "localhost:6379"
	}

	if raw := getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, fmt.Errorf("REDIS_DB must be a non-negative integer, got %q", raw)
		}
		config.DB = db
	}

	return config, nil
}
