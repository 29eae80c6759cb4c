// Package config loads the single process-wide configuration object.
//
// Sources are layered, later ones winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, config.yaml or config.yml)
//  3. Environment variables (see envMappings)
//
// The result is loaded once at process start and passed down explicitly; nothing
// re-reads the environment per request.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Remote   RemoteConfig   `koanf:"remote"`
	Sync     SyncConfig     `koanf:"sync"`
	Logging  LoggingConfig  `koanf:"logging"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Environment     string        `koanf:"environment" validate:"oneof=development production test"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds the catalog store credentials. The synchronizer needs
// write access, so this is a service credential rather than the public read one.
type DatabaseConfig struct {
	Driver   string `koanf:"driver" validate:"oneof=postgres memory"`
	URL      string `koanf:"url"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port" validate:"omitempty,min=1,max=65535"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// DSN returns the connection string, preferring URL over the individual fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RemoteConfig holds the media host credentials and listing bounds.
type RemoteConfig struct {
	Provider string `koanf:"provider" validate:"oneof=cloudinary drive"`

	CloudName string `koanf:"cloud_name"`
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
	BaseURL   string `koanf:"base_url" validate:"omitempty,url"`

	DriveCredentialsFile string `koanf:"drive_credentials_file"`
	DriveCredentialsJSON string `koanf:"drive_credentials_json"`

	// Folder is the listing scope: a public_id prefix for Cloudinary, a folder id for Drive.
	Folder     string        `koanf:"folder"`
	PageSize   int           `koanf:"page_size" validate:"min=1,max=500"`
	MaxResults int           `koanf:"max_results" validate:"min=1"`
	Timeout    time.Duration `koanf:"timeout" validate:"min=0"`
}

// SyncConfig holds the classification rules and owner identity.
type SyncConfig struct {
	OwnerEmail   string   `koanf:"owner_email" validate:"omitempty,email"`
	ExcludedTags []string `koanf:"excluded_tags"`
	// ExcludedPrefixes match the start of the full public_id, so they carry
	// the listing folder ("portfolio/projects/", not "projects/").
	ExcludedPrefixes []string `koanf:"excluded_prefixes"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// CacheConfig configures the on-disk preview cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Path    string        `koanf:"path"`
	TTL     time.Duration `koanf:"ttl" validate:"min=0"`
}

type SecurityConfig struct {
	CORSOrigins      []string      `koanf:"cors_origins"`
	SyncRateLimit    int           `koanf:"sync_rate_limit" validate:"min=0"`
	SyncRateWindow   time.Duration `koanf:"sync_rate_window" validate:"min=0"`
	DisableRateLimit bool          `koanf:"disable_rate_limit"`
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// defaultConfig returns the values applied before file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Environment:     "development",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:  "postgres",
			Port:    5432,
			SSLMode: "disable",
		},
		Remote: RemoteConfig{
			Provider:   "cloudinary",
			BaseURL:    "https://api.cloudinary.com",
			Folder:     "portfolio",
			PageSize:   100,
			MaxResults: 500,
			Timeout:    30 * time.Second,
		},
		Sync: SyncConfig{
			ExcludedTags:     []string{"project"},
			ExcludedPrefixes: []string{"portfolio/projects/"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "cache/previews",
			TTL:     7 * 24 * time.Hour,
		},
		Security: SecurityConfig{
			CORSOrigins:    []string{"*"},
			SyncRateLimit:  5,
			SyncRateWindow: time.Minute,
		},
	}
}
