// Package config loads the application configuration and per-installation
// notification settings from viper.
package config

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/herald-hq/herald/internal/common"
	"github.com/herald-hq/herald/internal/model"
)

// Config is everything the herald process needs to run.
type Config struct {
	Notifications model.Settings `mapstructure:"notifications"`
	Listen        string         `mapstructure:"listen"`
	DatabasePath  string         `mapstructure:"database_path"`
	AppBaseURL    string         `mapstructure:"app_base_url"`
	DailyCron     string         `mapstructure:"daily_cron"`
	SpaceID       string         `mapstructure:"space_id"`
	Platform      Platform       `mapstructure:"platform"`
}

// Platform holds the host API connection settings.
type Platform struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// Load reads the configuration from the already-initialized viper instance.
// The Notify* toggles stay nil when their keys are absent so the filter
// engine's defaults apply; mapstructure only sets *bool fields that exist in
// the source.
func Load() (*Config, error) {
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("database_path", "herald.db")
	viper.SetDefault("app_base_url", "https://app.example.com")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.Notifications.WebhookURL == "" {
		return nil, fmt.Errorf("%w: notifications.webhook_url is required", common.ErrMissingConfig)
	}
	if cfg.Notifications.MinimumAmount < 0 {
		return nil, fmt.Errorf("%w: notifications.minimum_amount must not be negative", common.ErrInvalidConfig)
	}

	return &cfg, nil
}

// StaticSettings serves one installation's settings for every space. The
// single-tenant deployment shape: one config file, one webhook.
type StaticSettings struct {
	settings model.Settings
}

// NewStaticSettings wraps fixed settings as a settings source.
func NewStaticSettings(settings model.Settings) *StaticSettings {
	return &StaticSettings{settings: settings}
}

// For implements server.SettingsSource.
func (s *StaticSettings) For(_ context.Context, _ string) (model.Settings, error) {
	return s.settings, nil
}
