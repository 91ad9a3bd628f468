//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Portions copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesperf.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salesperf.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Input holds the CSV source file configuration.
	Input InputConfig `mapstructure:"input"`

	// Load holds configuration for the dimensional load.
	Load LoadConfig `mapstructure:"load"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// InputConfig describes where the raw CSV extracts live.
type InputConfig struct {
	// Dir is the directory containing the CSV files.
	Dir string `mapstructure:"dir"`

	// ProductsFile is the products CSV file name within Dir.
	ProductsFile string `mapstructure:"products_file"`

	// CustomersFile is the customers CSV file name within Dir.
	CustomersFile string `mapstructure:"customers_file"`

	// SalesFile is the sales CSV file name within Dir.
	SalesFile string `mapstructure:"sales_file"`
}

// LoadConfig holds configuration for the dimensional load stage.
type LoadConfig struct {
	// Strategy controls how dimensional tables are populated:
	// "replace-all" truncates them before inserting, "append" inserts
	// on top of existing rows, "upsert-by-key" merges on the natural key.
	Strategy string `mapstructure:"strategy"`

	// EnforceQuality aborts the run when the quality checks report
	// null required fields or duplicate keys. Off by default: findings
	// are logged but the load proceeds.
	EnforceQuality bool `mapstructure:"enforce_quality"`
}

// ReportConfig holds configuration for report output.
type ReportConfig struct {
	// TopProducts is the row limit for the product revenue report.
	TopProducts int `mapstructure:"top_products"`

	// TopCustomers is the row limit for the customer volume report.
	TopCustomers int `mapstructure:"top_customers"`
}

// SeedConfig holds configuration for sample CSV generation.
type SeedConfig struct {
	// Products is the number of product rows to generate.
	Products int `mapstructure:"products"`

	// Customers is the number of customer rows to generate.
	Customers int `mapstructure:"customers"`

	// Sales is the number of sales rows to generate.
	Sales int `mapstructure:"sales"`

	// NullRate is the fraction of generated rows given a null field.
	NullRate float64 `mapstructure:"null_rate"`

	// DuplicateRate is the fraction of generated rows repeated with
	// the same natural key.
	DuplicateRate float64 `mapstructure:"duplicate_rate"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Input: InputConfig{
			Dir:           ".",
			ProductsFile:  "products.csv",
			CustomersFile: "customers.csv",
			SalesFile:     "sales.csv",
		},
		Load: LoadConfig{
			Strategy:       "replace-all",
			EnforceQuality: false,
		},
		Report: ReportConfig{
			TopProducts:  10,
			TopCustomers: 5,
		},
		Seed: SeedConfig{
			Products:      50,
			Customers:     200,
			Sales:         1000,
			NullRate:      0.05,
			DuplicateRate: 0.02,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesperf.yaml
// 3. ~/.config/salesperf/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("salesperf")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesperf"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
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

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	switch c.Load.Strategy {
	case "replace-all", "append", "upsert-by-key":
	default:
		return fmt.Errorf("load strategy must be 'replace-all', 'append' or 'upsert-by-key'")
	}
	return nil
}

// ValidateCheck checks configuration required for the check command.
func (c *Config) ValidateCheck() error {
	return c.validateInput()
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Report.TopProducts < 1 {
		return fmt.Errorf("top_products must be at least 1")
	}
	if c.Report.TopCustomers < 1 {
		return fmt.Errorf("top_customers must be at least 1")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.Seed.Products < 1 || c.Seed.Customers < 1 || c.Seed.Sales < 1 {
		return fmt.Errorf("seed row counts must be at least 1")
	}
	if c.Seed.NullRate < 0 || c.Seed.NullRate > 1 {
		return fmt.Errorf("null_rate must be between 0 and 1")
	}
	if c.Seed.DuplicateRate < 0 || c.Seed.DuplicateRate > 1 {
		return fmt.Errorf("duplicate_rate must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateInput() error {
	if c.Input.ProductsFile == "" || c.Input.CustomersFile == "" || c.Input.SalesFile == "" {
		return fmt.Errorf("input file names must not be empty")
	}
	return nil
}

// ProductsPath returns the full path to the products CSV.
func (c *Config) ProductsPath() string {
	return filepath.Join(c.Input.Dir, c.Input.ProductsFile)
}

// CustomersPath returns the full path to the customers CSV.
func (c *Config) CustomersPath() string {
	return filepath.Join(c.Input.Dir, c.Input.CustomersFile)
}

// SalesPath returns the full path to the sales CSV.
func (c *Config) SalesPath() string {
	return filepath.Join(c.Input.Dir, c.Input.SalesFile)
}
