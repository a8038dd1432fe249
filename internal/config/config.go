package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port" env:"SERVER_PORT"`
	Mode string `yaml:"mode" env:"SERVER_MODE"`
}

// PostgresConfig holds settings for the Postgres store driver.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     string `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
}

// RedisConfig holds settings for the Redis store driver.
type RedisConfig struct {
	Addr      string `yaml:"addr" env:"REDIS_ADDR"`
	Password  string `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"REDIS_DB"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX"`
}

// StoreConfig selects and configures the entity store provider.
type StoreConfig struct {
	// Driver is one of: memory, file, postgres, redis.
	Driver   string         `yaml:"driver" env:"STORE_DRIVER"`
	DataDir  string         `yaml:"data_dir" env:"STORE_DATA_DIR"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// AuthConfig holds the platform-level shared secrets.
type AuthConfig struct {
	// SuperAdminSecret gates the platform operator login.
	SuperAdminSecret string `yaml:"super_admin_secret" env:"SUPER_ADMIN_SECRET"`
	// DefaultAccessKey seeds the per-institution lead access key at
	// institution creation time.
	DefaultAccessKey string `yaml:"default_access_key" env:"LEAD_ACCESS_KEY"`
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret                string `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
	Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Auth    AuthConfig    `yaml:"auth"`
	JWT     JWTConfig     `yaml:"jwt"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file, then overrides it with
// environment variables declared via `env` struct tags.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Store.Driver = "file"
	config.Store.DataDir = "data"
	config.Store.Postgres.Host = "localhost"
	config.Store.Postgres.Port = "5432"
	config.Store.Postgres.User = "postgres"
	config.Store.Postgres.Password = "postgres"
	config.Store.Postgres.DBName = "buildforge"
	config.Store.Postgres.SSLMode = "disable"
	config.Store.Redis.Addr = "localhost:6379"
	config.Store.Redis.KeyPrefix = "buildforge:"

	config.Auth.SuperAdminSecret = "squadran_root"
	config.Auth.DefaultAccessKey = "admin"

	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "buildforge.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	switch config.Store.Driver {
	case "memory", "file", "postgres", "redis":
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.Auth.SuperAdminSecret == "" {
		return fmt.Errorf("super admin secret is required")
	}
	if config.Auth.DefaultAccessKey == "" {
		return fmt.Errorf("default lead access key is required")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	return nil
}

// AccessTokenExp returns the parsed token lifetime. validateConfig has
// already checked the format.
func (c *Config) AccessTokenExp() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTokenExpiration)
	return d
}

// PostgresDSN returns the connection string for the Postgres store driver.
func (c *Config) PostgresDSN() string {
	pg := c.Store.Postgres
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		pg.User, pg.Password, pg.Host, pg.Port, pg.DBName, pg.SSLMode)
}
