package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cron     CronConfig     `yaml:"cron"`
	Auth     AuthConfig     `yaml:"auth"`
	AI       AIConfig       `yaml:"ai"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type CronConfig struct {
	SweepInterval     string `yaml:"sweep_interval"`     // expired summary-cache purge
	RecomputeInterval string `yaml:"recompute_interval"` // therapist rating recompute
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

type AIConfig struct {
	CacheTTLDays int  `yaml:"cache_ttl_days"`
	SingleFlight bool `yaml:"single_flight"` // collapse concurrent cache misses into one provider call
}

// Load reads the config file if present, then applies env overrides.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: "3000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Path: "data/directory.db",
		},
		Cron: CronConfig{
			SweepInterval:     "0 3 * * *",    // daily at 03:00
			RecomputeInterval: "*/30 * * * *", // every 30 minutes
		},
		Auth: AuthConfig{
			TokenTTLHours: 24 * 30,
		},
		AI: AIConfig{
			CacheTTLDays: 7,
			SingleFlight: true,
		},
	}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else {
		log.Printf("config file not found: %s, using defaults", configPath)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		cfg.Auth.AdminEmail = email
	}

	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		cfg.Auth.AdminPassword = password
	}

	return cfg, nil
}

// GetServerAddress returns the listen address for the HTTP server.
func (c *Config) GetServerAddress() string {
	if _, err := strconv.Atoi(c.Server.Port); err == nil {
		return ":" + c.Server.Port
	}
	return c.Server.Port
}
