// Package config loads the settings of the cfs tool.
//
// Settings come, by increasing precedence, from the defaults, an optional
// TOML file, a .env file in the working directory and CFS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/etnz/cashflow"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvBookFile        = "CFS_BOOK_FILE"
	EnvCurrency        = "CFS_CURRENCY"
	EnvLiquidityWindow = "CFS_LIQUIDITY_WINDOW"
	EnvDueHorizon      = "CFS_DUE_HORIZON"
	EnvGranularity     = "CFS_GRANULARITY"
	EnvLogLevel        = "CFS_LOG_LEVEL"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	BookFile        string `toml:"book"`
	Currency        string `toml:"currency"`
	LiquidityWindow int    `toml:"liquidity_window"` // days
	DueHorizon      int    `toml:"due_horizon"`      // days
	Granularity     string `toml:"granularity"`
	LogLevel        string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BookFile:        "book.jsonl",
		Currency:        "EUR",
		LiquidityWindow: cashflow.LiquidityWindowDays,
		DueHorizon:      7,
		Granularity:     "month",
		LogLevel:        "info",
	}
}

// Load returns the settings read from the TOML file at path, the .env file and
// the environment. A missing file, at path or .env, is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("reading config %q: %w", path, err)
		}
	}
	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("reading .env: %w", err)
	}
	if err := cfg.fromEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) fromEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = n
		return nil
	}
	str(EnvBookFile, &c.BookFile)
	str(EnvCurrency, &c.Currency)
	str(EnvGranularity, &c.Granularity)
	str(EnvLogLevel, &c.LogLevel)
	return errors.Join(
		num(EnvLiquidityWindow, &c.LiquidityWindow),
		num(EnvDueHorizon, &c.DueHorizon),
	)
}

// Validate checks the settings that cannot be fixed by a default.
func (c Config) Validate() error {
	var errs []error
	if c.BookFile == "" {
		errs = append(errs, fmt.Errorf("%w: book file is empty", cashflow.ErrInvalidInput))
	}
	if c.LiquidityWindow < 0 {
		errs = append(errs, fmt.Errorf("%w: negative liquidity window %d", cashflow.ErrInvalidInput, c.LiquidityWindow))
	}
	if c.DueHorizon < 0 {
		errs = append(errs, fmt.Errorf("%w: negative due horizon %d", cashflow.ErrInvalidInput, c.DueHorizon))
	}
	return errors.Join(errs...)
}
