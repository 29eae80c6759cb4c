package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when no explicit path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// envMappings maps recognised environment variables to koanf paths. Anything
// not listed here is ignored.
var envMappings = map[string]string{
	"host": "server.host",
	"port": "server.port",
	"env":  "server.environment",

	"database_url": "database.url",
	"db_driver":    "database.driver",
	"db_host":      "database.host",
	"db_port":      "database.port",
	"db_user":      "database.user",
	"db_password":  "database.password",
	"db_name":      "database.name",
	"db_sslmode":   "database.sslmode",

	"remote_provider":                     "remote.provider",
	"cloudinary_cloud_name":               "remote.cloud_name",
	"cloudinary_api_key":                  "remote.api_key",
	"cloudinary_api_secret":               "remote.api_secret",
	"cloudinary_base_url":                 "remote.base_url",
	"google_application_credentials":      "remote.drive_credentials_file",
	"google_application_credentials_json": "remote.drive_credentials_json",
	"sync_folder":                         "remote.folder",
	"sync_page_size":                      "remote.page_size",
	"sync_max_results":                    "remote.max_results",
	"remote_timeout":                      "remote.timeout",

	"sync_owner_email":       "sync.owner_email",
	"admin_email":            "sync.owner_email",
	"sync_excluded_tags":     "sync.excluded_tags",
	"sync_excluded_prefixes": "sync.excluded_prefixes",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"preview_cache_enabled": "cache.enabled",
	"preview_cache_path":    "cache.path",
	"preview_cache_ttl":     "cache.ttl",

	"cors_origins":       "security.cors_origins",
	"sync_rate_limit":    "security.sync_rate_limit",
	"sync_rate_window":   "security.sync_rate_window",
	"disable_rate_limit": "security.disable_rate_limit",
}

// sliceConfigPaths are split on commas when they arrive from the environment.
var sliceConfigPaths = map[string]bool{
	"sync.excluded_tags":     true,
	"sync.excluded_prefixes": true,
	"security.cors_origins":  true,
}

// Load builds the configuration. An empty path falls back to CONFIG_PATH and
// then DefaultConfigPaths; a missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps an environment variable to its koanf path and value.
// Returning an empty key drops the variable.
func envTransform(key, value string) (string, interface{}) {
	path, ok := envMappings[strings.ToLower(key)]
	if !ok {
		return "", nil
	}

	// Render and similar hosts sometimes hand out PORT as ":8080".
	if path == "server.port" {
		value = strings.TrimPrefix(value, ":")
	}

	if sliceConfigPaths[path] {
		return path, splitList(value)
	}
	return path, value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
