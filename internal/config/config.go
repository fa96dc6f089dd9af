package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is the finished run configuration. The pipeline never reads
// interactive input; everything is resolved here and via CLI flags
// before it starts.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	TeamID         string
	GeneralChannel string

	DataDir  string
	LogLevel string
}

// NewConfig reads the environment, loading a .env file first when one
// is present.
func NewConfig() (*Config, error) {
	// A missing .env file is fine; plain environment variables apply.
	_ = godotenv.Load()

	cfg := &Config{
		TenantID:       os.Getenv("TEAMS_TENANT_ID"),
		ClientID:       os.Getenv("TEAMS_CLIENT_ID"),
		ClientSecret:   os.Getenv("TEAMS_CLIENT_SECRET"),
		TeamID:         os.Getenv("TEAMS_TEAM_ID"),
		GeneralChannel: getEnvOrDefault("GENERAL_CHANNEL", "general"),
		DataDir:        getEnvOrDefault("DATA_DIR", "data"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
	}
	return cfg, nil
}

// ValidateAuth checks the fields every remote-calling command needs.
func (c *Config) ValidateAuth() error {
	if c.TenantID == "" {
		return fmt.Errorf("TEAMS_TENANT_ID is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("TEAMS_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("TEAMS_CLIENT_SECRET is required")
	}
	return nil
}

// LookupTablePath is where the resumable thread lookup table lives.
func (c *Config) LookupTablePath() string {
	return filepath.Join(c.DataDir, "LookupTable-IDS.json")
}

// UserListPath is where the reconciled user registry is persisted.
func (c *Config) UserListPath() string {
	return filepath.Join(c.DataDir, "userList.json")
}

// LogDir is where dated log files are written.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
