// Package config loads and saves tabdeck settings: defaults, an optional
// TOML file, and TABDECK_ environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/spf13/viper"

	"tabdeck/internal/nav"
)

// Config holds application configuration.
type Config struct {
	UI        UIConfig
	Nav       NavConfig
	Content   ContentConfig
	Session   SessionConfig
	Telemetry TelemetryConfig
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is the glamour style for page bodies: dark, light, notty, auto.
	Theme string
}

// NavConfig holds tab bar behaviour.
type NavConfig struct {
	Breakpoint int
	NextKeys   []string `mapstructure:"next_keys"`
	PrevKeys   []string `mapstructure:"prev_keys"`
}

// ContentConfig locates the page sources.
type ContentConfig struct {
	// Dir is a directory of markdown pages; empty uses the built-in set.
	Dir string
}

// SessionConfig controls navigation state persistence.
type SessionConfig struct {
	Enabled      bool
	Dir          string
	FlushDelayMS int `mapstructure:"flush_delay_ms"`
}

// TelemetryConfig bounds the in-memory visit recorder.
type TelemetryConfig struct {
	MaxVisits int `mapstructure:"max_visits"`
}

// FlushDelay returns the session flush debounce as a duration.
func (s SessionConfig) FlushDelay() time.Duration {
	if s.FlushDelayMS <= 0 {
		return 750 * time.Millisecond
	}
	return time.Duration(s.FlushDelayMS) * time.Millisecond
}

// Path returns the effective config file location: $TABDECK_CONFIG when
// set, else ~/.config/tabdeck/config.toml.
func Path() string {
	if p := os.Getenv("TABDECK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tabdeck", "config.toml")
}

func defaults(v *viper.Viper) {
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("nav.breakpoint", nav.DefaultBreakpoint)
	v.SetDefault("nav.next_keys", []string{"right", "l"})
	v.SetDefault("nav.prev_keys", []string{"left", "h"})
	v.SetDefault("content.dir", "")
	v.SetDefault("session.enabled", true)
	v.SetDefault("session.dir", "")
	v.SetDefault("session.flush_delay_ms", 750)
	v.SetDefault("telemetry.max_visits", 50)
}

// Load reads configuration from file and env. Env overrides use the
// TABDECK_ prefix, e.g. TABDECK_NAV_BREAKPOINT=90. A missing config file
// is not an error; the defaults stand.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigType("toml")
	if p := os.Getenv("TABDECK_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tabdeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to the effective config path, creating the directory if
// needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("nav.breakpoint", cfg.Nav.Breakpoint)
	v.Set("nav.next_keys", cfg.Nav.NextKeys)
	v.Set("nav.prev_keys", cfg.Nav.PrevKeys)
	v.Set("content.dir", cfg.Content.Dir)
	v.Set("session.enabled", cfg.Session.Enabled)
	v.Set("session.dir", cfg.Session.Dir)
	v.Set("session.flush_delay_ms", cfg.Session.FlushDelayMS)
	v.Set("telemetry.max_visits", cfg.Telemetry.MaxVisits)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// NavKeyMap converts the configured traversal keys into nav bindings,
// keeping the defaults for anything left empty.
func (c Config) NavKeyMap() nav.KeyMap {
	km := nav.DefaultKeyMap()
	if len(c.Nav.NextKeys) > 0 {
		km.Next = key.NewBinding(
			key.WithKeys(c.Nav.NextKeys...),
			key.WithHelp(strings.Join(c.Nav.NextKeys, "/"), "next tab"),
		)
	}
	if len(c.Nav.PrevKeys) > 0 {
		km.Prev = key.NewBinding(
			key.WithKeys(c.Nav.PrevKeys...),
			key.WithHelp(strings.Join(c.Nav.PrevKeys, "/"), "prev tab"),
		)
	}
	return km
}
