// SPDX-License-Identifier: EPL-2.0

// Package cliutil holds the pieces shared by the msurev and msupcm commands.
package cliutil

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// ErrUsage is returned when the positional arguments are wrong.
var ErrUsage = errors.New("wrong number of arguments")

const verboseFlag = "verbose"

// VerboseFlag returns a fresh --verbose flag. Flags carry parse state, so
// every app gets its own.
func VerboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    verboseFlag,
		Aliases: []string{"v"},
		Usage:   "enable debug logging",
	}
}

// NewLogger builds a console logger writing to stderr, at debug level when
// verbose is set and info level otherwise.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}

// Logger builds the logger selected by VerboseFlag.
func Logger(c *cli.Context) (*zap.Logger, error) {
	return NewLogger(c.Bool(verboseFlag))
}

// Args returns exactly n positional arguments or ErrUsage.
func Args(c *cli.Context, n int) ([]string, error) {
	if c.NArg() != n {
		return nil, fmt.Errorf("%w: want %d, got %d (flags go before file names)", ErrUsage, n, c.NArg())
	}
	return c.Args().Slice(), nil
}
