// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/hypercounter/config"
	"github.com/ava-labs/hypercounter/consts"
	"github.com/ava-labs/hypercounter/host"
	"github.com/ava-labs/hypercounter/program"
	"github.com/ava-labs/hypercounter/state"
	"github.com/ava-labs/hypercounter/storage"

	cctrace "github.com/ava-labs/hypercounter/trace"
)

// cli holds everything a subcommand needs. It is populated before any
// subcommand runs and torn down once the command tree finishes.
type cli struct {
	configPath string
	logLevel   string
	dataDir    string
	ephemeral  bool

	cfg        *config.Config
	logFactory *logFactory
	log        logging.Logger
	registry   *prometheus.Registry
	tracer     trace.Tracer
	closers    []func() error
	host       *host.Host
}

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter-cli",
		Short: "Counter program host",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.init()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a JSON config file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides config)")
	cmd.PersistentFlags().StringVar(&c.dataDir, "db", "", "database directory (overrides config)")
	cmd.PersistentFlags().BoolVar(&c.ephemeral, "ephemeral", false, "keep accounts in memory only")

	cmd.AddCommand(
		newAccountCmd(c),
		newInvokeCmd(c),
		newRunCmd(c),
		newServeCmd(c),
	)

	return cmd
}

// Execute runs the command line in [args] and releases everything the command
// opened before returning.
func Execute(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, out io.Writer) error {
	c := &cli{}
	cmd := newRootCmd(c)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, c.close())
}

func (c *cli) init() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel, err = logging.ToLevel(c.logLevel)
		if err != nil {
			return err
		}
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	c.cfg = cfg

	logConfig := logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   8,
			MaxFiles:  4,
			MaxAge:    7,
			Directory: cfg.LogDir,
		},
		DisableWriterDisplaying: !cfg.LogDisplay,
		LogLevel:                cfg.LogLevel,
		DisplayLevel:            cfg.LogLevel,
		LogFormat:               logging.JSON,
	}
	c.logFactory = newLogFactory(logConfig)
	c.log, err = c.logFactory.Make(consts.Name)
	if err != nil {
		return err
	}

	c.tracer, err = cctrace.New(&cfg.Trace)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, c.tracer.Close)

	c.registry = prometheus.NewRegistry()
	var db state.Mutable
	if c.ephemeral {
		db = state.NewDatabaseMutable(memdb.New())
	} else {
		pdb, err := storage.New(cfg.Pebble, cfg.DataDir, c.registry)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, pdb.Close)
		db = state.NewDatabaseMutable(pdb)
	}
	if cfg.AccountCacheSize > 0 {
		cached, err := state.NewCachedMutable(db, cfg.AccountCacheSize)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, cached.Close)
		db = cached
	}

	p, err := program.New(c.log, c.tracer, c.registry)
	if err != nil {
		return err
	}
	c.host = host.New(c.log, c.tracer, db, p)

	c.log.Debug("host initialized",
		zap.String("dataDir", cfg.DataDir),
		zap.Bool("ephemeral", c.ephemeral),
		zap.Stringer("logLevel", cfg.LogLevel),
	)
	return nil
}

func (c *cli) close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	if c.logFactory != nil {
		c.logFactory.Close()
		c.logFactory = nil
	}
	return errors.Join(errs...)
}
