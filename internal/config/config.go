//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesdwh.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salesdwh.
type Config struct {
	// Connection is the PostgreSQL connection string for the sales_data
	// warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Reports holds configuration for the report subcommand.
	Reports ReportsConfig `mapstructure:"reports"`
}

// SeedConfig holds row counts for test data generation.
type SeedConfig struct {
	// Products is the number of dim_products rows to generate.
	Products int `mapstructure:"products"`

	// Stores is the number of dim_store_details rows to generate,
	// including the web store.
	Stores int `mapstructure:"stores"`

	// Users is the number of dim_users rows to generate.
	Users int `mapstructure:"users"`

	// Cards is the number of dim_card_details rows to generate.
	Cards int `mapstructure:"cards"`

	// Orders is the number of orders_table rows to generate.
	Orders int `mapstructure:"orders"`

	// RandomSeed seeds the data generator for reproducible runs
	// (0 = non-deterministic).
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// ReportsConfig holds the business literals the report layer depends on.
// They are configuration rather than hard-coded so the channel rule and
// outlier exclusions can be audited and changed without touching queries.
type ReportsConfig struct {
	// WebStoreCode is the store code that identifies the online sales
	// channel. Every other store code is treated as a physical location.
	WebStoreCode string `mapstructure:"web_store_code"`

	// ExcludedYears lists outlier years skipped by the rate-based
	// sales-frequency report.
	ExcludedYears []int `mapstructure:"excluded_years"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Seed: SeedConfig{
			Products: 250,
			Stores:   40,
			Users:    500,
			Cards:    400,
			Orders:   5000,
		},
		Reports: ReportsConfig{
			WebStoreCode: "WEB-1388012W",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesdwh.yaml
// 3. ~/.config/salesdwh/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesdwh")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesdwh"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Products < 1 {
		return fmt.Errorf("seed.products must be at least 1")
	}
	if c.Seed.Stores < 2 {
		return fmt.Errorf("seed.stores must be at least 2 (web store plus one physical store)")
	}
	if c.Seed.Users < 1 {
		return fmt.Errorf("seed.users must be at least 1")
	}
	if c.Seed.Cards < 1 {
		return fmt.Errorf("seed.cards must be at least 1")
	}
	if c.Seed.Orders < 1 {
		return fmt.Errorf("seed.orders must be at least 1")
	}
	if c.Reports.WebStoreCode == "" {
		return fmt.Errorf("reports.web_store_code is required")
	}
	return nil
}

// ValidateReports checks configuration required for the report command.
func (c *Config) ValidateReports() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Reports.WebStoreCode == "" {
		return fmt.Errorf("reports.web_store_code is required")
	}
	for _, year := range c.Reports.ExcludedYears {
		if year < 1900 || year > 2200 {
			return fmt.Errorf("reports.excluded_years contains implausible year %d", year)
		}
	}
	return nil
}
