// Package cmd implements the CLI application to manage a cash-flow book.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/config"
	"github.com/etnz/cashflow/logger"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balanceCmd{}, "reports")
	c.Register(&cashflowCmd{}, "reports")
	c.Register(&invoicesCmd{}, "reports")
	c.Register(&metricsCmd{}, "reports")
	c.Register(&categoriesCmd{}, "reports")
	c.Register(&dueCmd{}, "reports")
	c.Register(&txCmd{}, "reports")

	c.Register(&installmentsCmd{}, "transactions")
	c.Register(&expandCmd{}, "transactions")
	c.Register(&settleCmd{}, "transactions")
	c.Register(&undoCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")

	c.Register(&fmtCmd{}, "book")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "cfs.toml", "Path to the configuration file (TOML). A missing file is ignored.")
var bookFile = flag.String("book", "", "Path to the book file (JSONL). Overrides the configuration.")
var Verbose = flag.Bool("v", false, "Log debug information on stderr.")
var Raw = flag.Bool("raw", false, "Print reports as raw markdown instead of rendering them for the terminal.")

// cfg holds the settings once Setup has run.
var cfg = config.Default()

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// Setup loads the configuration and returns a context carrying the logger.
// It must be called after the global flags are parsed.
func Setup(ctx context.Context) (context.Context, error) {
	c, err := config.Load(*configFile)
	if err != nil {
		return ctx, err
	}
	if *bookFile != "" {
		c.BookFile = *bookFile
	}
	level := c.LogLevel
	if *Verbose {
		level = "debug"
	}
	log, err := logger.WithLevel(logger.New(), level)
	if err != nil {
		return ctx, err
	}
	cfg = c
	log.Debug().Str("config", *configFile).Str("book", cfg.BookFile).Msg("configuration loaded")
	return logger.WithContext(ctx, log), nil
}

// DecodeBook reads the book file. A missing file is an empty book.
func DecodeBook(ctx context.Context) (*cashflow.Book, error) {
	log := logger.FromContext(ctx)
	f, err := os.Open(cfg.BookFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("book", cfg.BookFile).Msg("book does not exist, starting from an empty book")
		b := cashflow.NewBook()
		b.SetLogger(log)
		return b, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := cashflow.DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", cfg.BookFile, err)
	}
	b.SetLogger(log)
	log.Debug().Str("book", cfg.BookFile).Int("transactions", len(b.Transactions())).Msg("book loaded")
	return b, nil
}

// EncodeBook writes b to the book file, replacing it atomically.
func EncodeBook(ctx context.Context, b *cashflow.Book) error {
	dir, name := filepath.Split(cfg.BookFile)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, name+".*")
	if err != nil {
		return fmt.Errorf("error opening book file %q for writing: %w", cfg.BookFile, err)
	}
	defer os.Remove(f.Name())

	if err := cashflow.EncodeBook(f, b); err != nil {
		f.Close()
		return fmt.Errorf("error writing book file %q: %w", cfg.BookFile, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), cfg.BookFile); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug().Str("book", cfg.BookFile).Msg("book saved")
	return nil
}
