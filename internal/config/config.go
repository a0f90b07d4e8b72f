// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or come
// from CLI flags and environment variables.
type Config struct {
	// LLM
	Provider string `json:"provider,omitempty"` // "openai" or "gemini"
	Model    string `json:"model,omitempty"`    // Model name; empty uses the provider default
	APIKey   string `json:"api_key,omitempty"`  // API key; env vars take precedence
	BaseURL  string `json:"base_url,omitempty"` // OpenAI-compatible endpoint override

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Limits
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty"` // Upload size cap for analysis

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
}

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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	return nil
}

// APIKeyFromEnv returns the API key for the configured provider, preferring
// environment variables over the config file value.
func (c *Config) APIKeyFromEnv() string {
	if c.Provider == "gemini" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}
