package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	JWT         JWTConfig         `yaml:"jwt"`
	Log         LogConfig         `yaml:"log"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings and the bounded
// per-transaction waits.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
	Migrate  bool   `yaml:"migrate"`

	LockTimeoutMS      int `yaml:"lock_timeout_ms"`
	StatementTimeoutMS int `yaml:"statement_timeout_ms"`
}

// JWTConfig contains token validation settings for the admin middleware.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// MaintenanceConfig controls the administrative maintenance block.
type MaintenanceConfig struct {
	// WindowDays is the default length of a maintenance window. The
	// one-month figure from the product side is a default, not policy.
	WindowDays int `yaml:"window_days"`
}

// SchedulerConfig contains cron schedule settings.
type SchedulerConfig struct {
	ActivateDueBookings        string `yaml:"activate_due_bookings"`
	CompleteElapsedMaintenance string `yaml:"complete_elapsed_maintenance"`
}

// Load reads configuration from a YAML file, applies environment variable
// overrides and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := os.Getenv("MAINTENANCE_WINDOW_DAYS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Maintenance.WindowDays)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Maintenance.WindowDays <= 0 {
		c.Maintenance.WindowDays = 30
	}
	if c.Database.LockTimeoutMS <= 0 {
		c.Database.LockTimeoutMS = 3000
	}
	if c.Database.StatementTimeoutMS <= 0 {
		c.Database.StatementTimeoutMS = 10000
	}
	if c.Scheduler.ActivateDueBookings == "" {
		c.Scheduler.ActivateDueBookings = "0 5 0 * * *" // 00:05 UTC
	}
	if c.Scheduler.CompleteElapsedMaintenance == "" {
		c.Scheduler.CompleteElapsedMaintenance = "0 15 0 * * *" // 00:15 UTC
	}
	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string.
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address.
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LockTimeout returns the per-transaction lock wait bound.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Database.LockTimeoutMS) * time.Millisecond
}

// StatementTimeout returns the per-transaction statement bound.
func (c *Config) StatementTimeout() time.Duration {
	return time.Duration(c.Database.StatementTimeoutMS) * time.Millisecond
}
