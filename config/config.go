// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Logging
	Log LogConfig

	// Tuition fee schedule
	Fees FeeConfig

	// Catalog input files for cmd/enlistd
	Catalog CatalogConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string      `env:"APP_NAME" envDefault:"enlistment-hub"`
	Environment Environment `env:"APP_ENV" envDefault:"development"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is "text" or "json".
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// FeeConfig holds the tuition rates as decimal strings so cents survive the
// environment round-trip exactly.
type FeeConfig struct {
	PerUnit       string `env:"FEE_PER_UNIT" envDefault:"2000"`
	LabFee        string `env:"FEE_LABORATORY" envDefault:"1000"`
	MiscFee       string `env:"FEE_MISCELLANEOUS" envDefault:"3000"`
	VATMultiplier string `env:"FEE_VAT_MULTIPLIER" envDefault:"1.12"`
}

// CatalogConfig names the CSV files the enlistment session is loaded from.
type CatalogConfig struct {
	SubjectsFile string `env:"CATALOG_SUBJECTS_FILE" envDefault:"data/subjects.csv"`
	RoomsFile    string `env:"CATALOG_ROOMS_FILE" envDefault:"data/rooms.csv"`
	ProgramsFile string `env:"CATALOG_PROGRAMS_FILE" envDefault:"data/programs.csv"`
	SectionsFile string `env:"CATALOG_SECTIONS_FILE" envDefault:"data/sections.csv"`
	StudentsFile string `env:"CATALOG_STUDENTS_FILE" envDefault:"data/students.csv"`
	RequestsFile string `env:"CATALOG_REQUESTS_FILE" envDefault:"data/requests.csv"`
}

// Load parses configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("config: unknown environment %q", c.App.Environment)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log format must be text or json, was %q", c.Log.Format)
	}
	if _, err := c.Fees.FeeSchedule(); err != nil {
		return err
	}
	return nil
}

// FeeSchedule converts the configured rates into a validated domain fee
// schedule.
func (f FeeConfig) FeeSchedule() (enlistment.FeeSchedule, error) {
	perUnit, err := decimal.NewFromString(f.PerUnit)
	if err != nil {
		return enlistment.FeeSchedule{}, fmt.Errorf("config: FEE_PER_UNIT: %w", err)
	}
	labFee, err := decimal.NewFromString(f.LabFee)
	if err != nil {
		return enlistment.FeeSchedule{}, fmt.Errorf("config: FEE_LABORATORY: %w", err)
	}
	miscFee, err := decimal.NewFromString(f.MiscFee)
	if err != nil {
		return enlistment.FeeSchedule{}, fmt.Errorf("config: FEE_MISCELLANEOUS: %w", err)
	}
	vat, err := decimal.NewFromString(f.VATMultiplier)
	if err != nil {
		return enlistment.FeeSchedule{}, fmt.Errorf("config: FEE_VAT_MULTIPLIER: %w", err)
	}
	fees := enlistment.FeeSchedule{
		PerUnit:       perUnit,
		LabFee:        labFee,
		MiscFee:       miscFee,
		VATMultiplier: vat,
	}
	if err := fees.Validate(); err != nil {
		return enlistment.FeeSchedule{}, err
	}
	return fees, nil
}

// BuildLogger constructs the slog logger described by the log configuration.
func (c *Config) BuildLogger() *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(c.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("app", c.App.Name, "env", string(c.App.Environment))
}

// parseLevel maps a level name to a slog.Level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
}
