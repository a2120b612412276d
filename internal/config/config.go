package config

import "os"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port           string
	AllowedOrigins string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:           envOrDefault("PORT", "8011"),
		AllowedOrigins: envOrDefault("ALLOWED_ORIGINS", "*"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
