package config

import (
	"fmt"
	"time"

	"github.com/ressharu/menu-bot/pkg/dateutil"
	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Menu   MenuConfig   `mapstructure:"menu"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	State  StateConfig  `mapstructure:"state"`
	Daemon DaemonConfig `mapstructure:"daemon"`
}

// MenuConfig represents the menu feed and classification settings
type MenuConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	ReferenceYear int    `mapstructure:"reference_year"` // year menu records are pinned to; feed carries only month+day
	Locale        string `mapstructure:"locale"`         // weekday label locale: "en" or "ja"
	Timezone      string `mapstructure:"timezone"`       // IANA name, e.g. "Asia/Tokyo"
}

// FetchConfig represents HTTP fetch hardening settings
type FetchConfig struct {
	Timeout  string `mapstructure:"timeout"`
	Retries  int    `mapstructure:"retries"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// StateConfig represents state storage configuration
type StateConfig struct {
	BoardFile    string `mapstructure:"board_file"`    // last classified board
	SnapshotFile string `mapstructure:"snapshot_file"` // last raw feed response
}

// DaemonConfig represents daemon mode configuration
type DaemonConfig struct {
	RefreshInterval string `mapstructure:"refresh_interval"`
	DailyTime       string `mapstructure:"daily_time"` // HH:MM in the menu timezone
	LogFile         string `mapstructure:"log_file"`
	LogLevel        string `mapstructure:"log_level"`
	SystemTray      bool   `mapstructure:"system_tray"` // Windows only
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.menu-bot")
		v.AddConfigPath("/etc/menu-bot")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Menu.BaseURL == "" {
		return fmt.Errorf("menu.base_url is required")
	}

	if c.Menu.ReferenceYear != 0 && (c.Menu.ReferenceYear < 1970 || c.Menu.ReferenceYear > 2100) {
		return fmt.Errorf("menu.reference_year must be between 1970 and 2100, got %d", c.Menu.ReferenceYear)
	}

	switch c.Menu.Locale {
	case "", dateutil.LocaleEnglish, dateutil.LocaleJapanese:
	default:
		return fmt.Errorf("menu.locale must be 'en' or 'ja', got '%s'", c.Menu.Locale)
	}

	if c.Menu.Timezone != "" {
		if _, err := time.LoadLocation(c.Menu.Timezone); err != nil {
			return fmt.Errorf("menu.timezone is not a valid IANA zone: %w", err)
		}
	}

	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch.retries must not be negative")
	}

	if c.State.SnapshotFile == "" {
		return fmt.Errorf("state.snapshot_file is required")
	}
	if c.State.BoardFile == "" {
		return fmt.Errorf("state.board_file is required")
	}

	return nil
}

// GetLocation returns the configured time zone, defaulting to the system's
func (c *MenuConfig) GetLocation() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetTimeout returns the fetch timeout duration
func (c *FetchConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 15 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return duration
}

// GetCacheTTL returns the feed cache TTL duration
func (c *FetchConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return time.Hour
	}
	return duration
}

// GetRefreshInterval returns the daemon refresh interval duration
func (c *DaemonConfig) GetRefreshInterval() time.Duration {
	if c.RefreshInterval == "" {
		return 0 // interval mode disabled
	}
	duration, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0
	}
	return duration
}

// GetDailyTime returns the configured daily refresh time.
// Returns hour and minute (0-23, 0-59). Default: 10:30, before lunch.
func (c *DaemonConfig) GetDailyTime() (hour, minute int) {
	if c.DailyTime == "" {
		return 10, 30
	}

	var h, m int
	_, err := fmt.Sscanf(c.DailyTime, "%d:%d", &h, &m)
	if err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 10, 30
	}
	return h, m
}
