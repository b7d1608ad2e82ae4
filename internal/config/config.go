package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode        string   `yaml:"mode"`
	AccountID   string   `yaml:"account_id"`
	Instruments []string `yaml:"instruments"`

	DaysBack      int     `yaml:"days_back"`
	IntervalSize  float64 `yaml:"interval_size"`
	QuantityLimit int64   `yaml:"quantity_limit"`

	CheckIntervalSeconds int `yaml:"check_interval_seconds"`
	MarketPollSeconds    int `yaml:"market_poll_seconds"`
	TrackPollSeconds     int `yaml:"track_poll_seconds"`

	DBPath      string `yaml:"db_path"`
	MetricsAddr string `yaml:"metrics_addr"`

	Telegram struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"telegram"`
}

// Sandbox reports whether the bot trades against the sandbox services.
func (c *Config) Sandbox() bool {
	return c.Mode == "SANDBOX"
}

func (c *Config) Validate() error {
	if c.Mode != "SANDBOX" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'SANDBOX' or 'LIVE'", c.Mode)
	}
	if c.AccountID == "" {
		return errors.New("account_id cannot be empty")
	}
	if len(c.Instruments) == 0 {
		return errors.New("instruments cannot be empty")
	}
	if c.IntervalSize <= 0 || c.IntervalSize >= 1 {
		return fmt.Errorf("interval_size must be in (0, 1), got %.2f", c.IntervalSize)
	}
	if c.QuantityLimit <= 0 {
		return fmt.Errorf("quantity_limit must be positive, got %d", c.QuantityLimit)
	}
	if c.DaysBack <= 0 {
		return fmt.Errorf("days_back must be positive, got %d", c.DaysBack)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Mode == "" {
		c.Mode = "SANDBOX"
	}
	if c.DaysBack == 0 {
		c.DaysBack = 10
	}
	if c.IntervalSize == 0 {
		c.IntervalSize = 0.8
	}
	if c.QuantityLimit == 0 {
		c.QuantityLimit = 2
	}
	if c.CheckIntervalSeconds == 0 {
		c.CheckIntervalSeconds = 60
	}
	if c.MarketPollSeconds == 0 {
		c.MarketPollSeconds = 60
	}
	if c.TrackPollSeconds == 0 {
		c.TrackPollSeconds = 10
	}
	if c.DBPath == "" {
		c.DBPath = "orders.db"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
