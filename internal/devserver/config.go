package devserver

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/perifanotoque/perifa/pkg/perifa/constants"
)

// EnvPrefix prefixes the environment overrides, e.g. PERIFA_PORT.
const EnvPrefix = "PERIFA_"

// Config is the dev server configuration.
type Config struct {
	Port            int           `koanf:"port"`
	Dir             string        `koanf:"dir"`        // Web directory; empty serves the embedded host page
	AllowAll        bool          `koanf:"allow_all"`  // Allow every CORS origin
	LogLevel        string        `koanf:"log_level"`  // zerolog level name
	HumanLogs       bool          `koanf:"human_logs"` // Console output instead of JSON
	IconCacheSize   int           `koanf:"icon_cache_size"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
// PERIFA_ENVIRONMENT=DEV opens CORS to every origin.
func DefaultConfig() *Config {
	return &Config{
		Port:            8080,
		AllowAll:        constants.IsDevMode(),
		LogLevel:        "info",
		HumanLogs:       true,
		IconCacheSize:   64,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadConfig reads the YAML file at path when it exists, then overlays
// PERIFA_* environment variables.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration can be served.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Dir != "" {
		info, err := os.Stat(c.Dir)
		if err != nil {
			return fmt.Errorf("web directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("web directory %s is not a directory", c.Dir)
		}
	}
	if c.IconCacheSize < 1 {
		return fmt.Errorf("icon_cache_size must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
