package internal

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed perifa.toml
var defaultConfig string

// SiteConfig is the runtime configuration of the site.
type SiteConfig struct {
	Locale   string       `toml:"locale"`
	LogLevel string       `toml:"log_level"`
	Router   RouterConfig `toml:"router"`
	Toasts   ToastConfig  `toml:"toasts"`
	Theme    ThemeConfig  `toml:"theme"`
}

type RouterConfig struct {
	ContainerID  string            `toml:"container_id"`
	FadeDelay    time.Duration     `toml:"fade_delay"`
	LoadDelay    time.Duration     `toml:"load_delay"`
	DefaultTitle string            `toml:"default_title"`
	Titles       map[string]string `toml:"titles"`
}

type ToastConfig struct {
	Max      int    `toml:"max"`
	Position string `toml:"position"`
}

type ThemeConfig struct {
	StorageKey string        `toml:"storage_key"`
	Transition time.Duration `toml:"transition"`
}

// LoadConfig decodes the built-in configuration and then override on top of
// it. An empty override yields the defaults. Keys the override sets that the
// configuration does not know are logged and ignored.
func LoadConfig(override string) (SiteConfig, error) {
	var cfg SiteConfig

	if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decoding built-in config: %w", err)
	}

	if strings.TrimSpace(override) != "" {
		md, err := toml.Decode(override, &cfg)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("decoding config override: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			GetInternalLogger().Warn("Ignoring unknown config keys", "keys", keys)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyDefaults() {
	// Set defaults for anything an override blanked out
	if c.Locale == "" {
		c.Locale = "pt-BR"
	}
	if c.Router.ContainerID == "" {
		c.Router.ContainerID = "app-content"
	}
	if c.Router.FadeDelay <= 0 {
		c.Router.FadeDelay = 150 * time.Millisecond
	}
	if c.Router.LoadDelay <= 0 {
		c.Router.LoadDelay = 50 * time.Millisecond
	}
	if c.Router.DefaultTitle == "" {
		c.Router.DefaultTitle = "Perifa no Toque"
	}
	if c.Router.Titles == nil {
		c.Router.Titles = map[string]string{}
	}
	if c.Toasts.Max <= 0 {
		c.Toasts.Max = 5
	}
	if c.Theme.StorageKey == "" {
		c.Theme.StorageKey = "perifa-theme-preference"
	}
	if c.Theme.Transition <= 0 {
		c.Theme.Transition = 300 * time.Millisecond
	}
}
