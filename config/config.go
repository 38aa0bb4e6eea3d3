package config

import (
	"errors"
	"fmt"

	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/spf13/viper"
)

/* Config is read from an optional .env file (TOML) overridden by environment variables */

type Config struct {
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	TargetsFile string `mapstructure:"TARGETS_FILE"`

	WebhookURL            string `mapstructure:"WEBHOOK_URL"`
	WebhookMethod         string `mapstructure:"WEBHOOK_METHOD"`
	WebhookTimeoutSeconds int    `mapstructure:"WEBHOOK_TIMEOUT_SECONDS"`
	WebhookSigningSecret  string `mapstructure:"WEBHOOK_SIGNING_SECRET"`

	SecondaryURL            string `mapstructure:"WEBHOOK_SECONDARY_URL"`
	SecondaryMethod         string `mapstructure:"WEBHOOK_SECONDARY_METHOD"`
	SecondaryTimeoutSeconds int    `mapstructure:"WEBHOOK_SECONDARY_TIMEOUT_SECONDS"`
	SecondarySigningSecret  string `mapstructure:"WEBHOOK_SECONDARY_SIGNING_SECRET"`

	SchedulerEnabled bool `mapstructure:"WEBHOOK_SCHEDULER_ENABLED"`
}

var defaults = map[string]any{
	"PORT":                              "8080",
	"LOG_LEVEL":                         "info",
	"TARGETS_FILE":                      "",
	"WEBHOOK_URL":                       "",
	"WEBHOOK_METHOD":                    "GET",
	"WEBHOOK_TIMEOUT_SECONDS":           30,
	"WEBHOOK_SIGNING_SECRET":            "",
	"WEBHOOK_SECONDARY_URL":             "",
	"WEBHOOK_SECONDARY_METHOD":          "GET",
	"WEBHOOK_SECONDARY_TIMEOUT_SECONDS": 30,
	"WEBHOOK_SECONDARY_SIGNING_SECRET":  "",
	"WEBHOOK_SCHEDULER_ENABLED":         true,
}

// GetConfig reads the configuration from the working directory and the environment
func GetConfig() (*Config, error) {
	return Load(".")
}

// Load reads .env from dir when present; a missing file is not an error
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	// every key needs a default so AutomaticEnv can see it on Unmarshal
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// PrimaryTarget returns the target called by the 09:00, 13:00 and 18:00 runs
func (c *Config) PrimaryTarget() webhook.Target {
	return webhook.NewTarget(webhook.PrimaryTarget, c.WebhookURL, c.WebhookMethod, c.WebhookTimeoutSeconds, c.WebhookSigningSecret)
}

// SecondaryTarget returns the alternate channel target, possibly without URL
func (c *Config) SecondaryTarget() webhook.Target {
	return webhook.NewTarget(webhook.SecondaryTarget, c.SecondaryURL, c.SecondaryMethod, c.SecondaryTimeoutSeconds, c.SecondarySigningSecret)
}
