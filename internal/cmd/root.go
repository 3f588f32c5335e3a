// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package cmd implements the istr command line.
package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alex60217101990/istr/internal/config"
	"github.com/alex60217101990/istr/internal/logging"
	"github.com/alex60217101990/istr/v1/intern/arena"
)

// params carries the state shared by every subcommand of one invocation.
type params struct {
	v      *viper.Viper
	cfg    config.Config
	log    *logrus.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// maxprocs adjusts GOMAXPROCS to the container CPU quota before running.
	maxprocs bool
}

// Option customizes the root command.
type Option func(*params)

// WithIO replaces the standard streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(p *params) {
		p.stdin = stdin
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithMaxProcs enables GOMAXPROCS tuning from the container CPU quota.
func WithMaxProcs() Option {
	return func(p *params) {
		p.maxprocs = true
	}
}

// NewRootCommand builds the istr command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	p := &params{
		v:      viper.New(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}

	root := &cobra.Command{
		Use:   "istr",
		Short: "Intern the tokens of text files and report on the result",
		Long: `istr interns every token of its input into a string interner and reports
how much the input deduplicates. Snapshots of the interned strings can be
dumped and later restored to resolve persisted identifiers.

Settings come from flags, ISTR_* environment variables (for example
ISTR_LOG_LEVEL) and an optional YAML or JSON config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return p.setup()
		},
	}

	root.SetIn(p.stdin)
	root.SetOut(p.stdout)
	root.SetErr(p.stderr)

	flags := root.PersistentFlags()
	flags.String(config.KeyConfig, "", "path to a config file")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(config.KeyLogFormat, logging.FormatText, "log format (text, json)")
	flags.String(config.KeyWidth, config.WidthNative, "identifier width (16, 32, 64, native)")
	flags.String(config.KeyMode, config.ModeWords, "tokenize input by words or lines")
	flags.Int(config.KeyChunkSize, arena.DefaultChunkSize, "arena chunk size in bytes")
	flags.Uint64(config.KeySeed, 0, "hash seed; 0 picks a random seed")

	mustBind(p.v, flags)

	root.AddCommand(
		newStatsCommand(p),
		newDumpCommand(p),
		newLookupCommand(p),
		newMetricsCommand(p),
	)

	return root
}

// mustBind binds every flag of fs to the viper key of the same name. Binding
// only fails for a nil flag, which is a programming error.
func mustBind(v *viper.Viper, fs *pflag.FlagSet) {
	if err := v.BindPFlags(fs); err != nil {
		panic(err)
	}
}

func (p *params) setup() error {
	cfg, err := config.Load(p.v)
	if err != nil {
		return err
	}
	p.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, p.stderr)
	if err != nil {
		return err
	}
	p.log = logger

	if p.maxprocs {
		if _, err := maxprocs.Set(maxprocs.Logger(p.log.Debugf)); err != nil {
			p.log.WithError(err).Warn("Failed to set GOMAXPROCS.")
		}
	}

	p.log.WithFields(logrus.Fields{
		"width": cfg.Width,
		"mode":  cfg.Mode,
	}).Debug("Configuration loaded.")

	return nil
}
