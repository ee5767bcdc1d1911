package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the agenda client.
type Config struct {
	Environment string
	API         APIConfig
	Calendar    CalendarConfig
}

// APIConfig holds the backend connection details.
type APIConfig struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

// CalendarConfig holds the calendar grid bounds.
type CalendarConfig struct {
	OpeningHour int
	ClosingHour int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	timeoutSeconds, err := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT_SECONDS: %w", err)
	}

	openingHour, err := strconv.Atoi(getEnv("CALENDAR_OPENING_HOUR", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_OPENING_HOUR: %w", err)
	}

	closingHour, err := strconv.Atoi(getEnv("CALENDAR_CLOSING_HOUR", "19"))
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_CLOSING_HOUR: %w", err)
	}

	if closingHour <= openingHour {
		return nil, fmt.Errorf("CALENDAR_CLOSING_HOUR (%d) must be after CALENDAR_OPENING_HOUR (%d)",
			closingHour, openingHour)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:3001/api/v1"),
			Token:          getEnv("API_TOKEN", ""),
			TimeoutSeconds: timeoutSeconds,
		},
		Calendar: CalendarConfig{
			OpeningHour: openingHour,
			ClosingHour: closingHour,
		},
	}, nil
}

// IsDevelopment reports whether the client runs in a development
// environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
