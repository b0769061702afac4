package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-fieldmask/pkg/config"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

// app carries what every subcommand shares once flags are parsed.
type app struct {
	configPath string
	debug      bool

	cfg      config.Config
	registry *matcher.Registry
	logger   *zap.Logger
}

func newApp() *app {
	return &app{
		registry: matcher.NewRegistry(),
		logger:   zap.NewNop(),
	}
}

func newRootCmd() *cobra.Command {
	a := newApp()
	root := &cobra.Command{
		Use:   "fieldmask",
		Short: "Brazilian input masks for HTML forms and terminal prompts",
		Long: `fieldmask formats CPF, CNPJ, phone, CEP and vehicle plate values.

It can format raw values, report which mask a field would receive, rewrite
HTML pages so matched inputs carry formatted values and mask attributes,
watch a directory of pages, and prompt for a form in the terminal.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./fieldmask.yaml when present)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.formatCmd(),
		a.matchCmd(),
		a.rewriteCmd(),
		a.watchCmd(),
		a.promptCmd(),
	)
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if a.debug {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.registry = registry
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.Int("rules", len(cfg.Rules)),
	)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
