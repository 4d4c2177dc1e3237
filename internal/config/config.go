package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Backup      BackupConfig
	Auth        AuthConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Health      HealthConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Path         string
	BusyTimeout  time.Duration
	MaxOpenConns int
}

type BackupConfig struct {
	CatalogPath string
	Dir         string
	Interval    time.Duration
	Keep        int
}

// AuthConfig enables bearer-token protection of the API when Secret is set.
type AuthConfig struct {
	Secret string
	Issuer string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level      string
	Encoding   string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type HealthConfig struct {
	Interval time.Duration
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults suited to a single-user desktop install.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	dbPath := getString("DB_PATH", filepath.Join("data", "backoffice.sqlite"))
	dataDir := filepath.Dir(dbPath)

	cfg := &Config{
		AppName:     getString("APP_NAME", "backoffice"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "127.0.0.1"),
			Port:         getString("SERVER_PORT", "8787"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Path:         dbPath,
			BusyTimeout:  getDuration("DB_BUSY_TIMEOUT", 5*time.Second),
			MaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 1),
		},
		Backup: BackupConfig{
			CatalogPath: getString("CATALOG_PATH", filepath.Join(dataDir, "catalog.db")),
			Dir:         getString("BACKUP_DIR", filepath.Join(dataDir, "backups")),
			Interval:    getDuration("BACKUP_INTERVAL", 0),
			Keep:        getInt("BACKUP_KEEP", 7),
		},
		Auth: AuthConfig{
			Secret: os.Getenv("AUTH_SECRET"),
			Issuer: getString("AUTH_ISSUER", "backoffice"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:      getString("LOG_LEVEL", "info"),
			Encoding:   getString("LOG_ENCODING", "json"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getInt("LOG_MAX_AGE_DAYS", 28),
		},
		Health: HealthConfig{
			Interval: getDuration("HEALTH_INTERVAL", 30*time.Second),
		},
	}

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}
	if cfg.Backup.Keep < 1 {
		cfg.Backup.Keep = 1
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
