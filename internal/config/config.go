package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Search    SearchConfig    `yaml:"search"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port        string   `yaml:"port"`
	Mode        string   `yaml:"mode"` // "debug" or "release"
	CORSOrigins []string `yaml:"cors_origins"`
}

// Debug reports whether the deployment runs in development mode.
// Internal error details are only exposed to callers in this mode.
func (s *ServerConfig) Debug() bool {
	return s.Mode == "debug"
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"` // "mysql" or "postgres"
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// JWTConfig contains token issuance settings
type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

// GetExpiry returns the token lifetime as a duration
func (c *JWTConfig) GetExpiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// SchedulerConfig contains the lease-expiry sweep settings
type SchedulerConfig struct {
	LeaseExpiryEnabled bool   `yaml:"lease_expiry_enabled"`
	DailyRunTime       string `yaml:"daily_run_time"` // HH:MM
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Mode:        "release",
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Type: "mysql",
			MySQL: MySQLConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "angaza_user",
				Password: "angaza_pass",
				Database: "angaza_db",
			},
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		JWT: JWTConfig{
			ExpiryHours: 24,
		},
		Search: SearchConfig{
			Enabled: false,
			Meilisearch: MeilisearchConfig{
				Host: "http://localhost:7700",
			},
		},
		Scheduler: SchedulerConfig{
			LeaseExpiryEnabled: true,
			DailyRunTime:       "02:00",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// defaults for any value the file does not set.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
