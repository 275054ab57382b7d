// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// DefaultPort is the HTTP port used when nothing else is configured.
const DefaultPort = 8080

// Config represents the application configuration. Values come from a JSON
// file, the environment, or CLI flags; precedence is flags > file > env.
type Config struct {
	Port            int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	DatabaseURL     string `json:"database_url,omitempty"`
	JWTSecret       string `json:"jwt_secret,omitempty"`
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
	GeminiModel     string `json:"gemini_model,omitempty"`
	MatchServiceURL string `json:"match_service_url,omitempty" validate:"omitempty,url"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. godotenv has already
// folded any .env file into the environment by the time this runs.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		MatchServiceURL: os.Getenv("MATCH_SERVICE_URL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has usable values. Required fields
// are checked here; shape constraints live in the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return fmt.Errorf("config error: %s fails %q validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required (or set DATABASE_URL)")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config error: jwt_secret is required (or set JWT_SECRET)")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to layer a config file over environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.MatchServiceURL == "" {
		result.MatchServiceURL = defaults.MatchServiceURL
	}

	return result
}
