// Package cmd is apigen's cobra command tree: a single "generate"
// command (with room for more as the descriptor format grows), reading
// its settings from a config file / environment via apigen/config,
// layered under explicit flags.
//
// Structured the way linkerd2's cli/cmd/root.go builds its RootCmd:
// package-level flag variables bound in NewRootCmd, a PersistentPreRunE that
// validates global state before any subcommand runs.
package cmd

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-apigen/apigen/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile  string
	logLevel string

	logger *zap.Logger
	mgr    *config.Manager
)

// NewRootCmd builds apigen's root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "apigen",
		Short: "apigen generates a Go HTTP client from a declarative descriptor",
		Long: `apigen reads a YAML or JSON descriptor of an annotated service interface
and generates a Go source file implementing it against apigen/request.Requester.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cfgFile != "" {
				opts = append(opts, config.WithConfigFile(cfgFile))
			}
			mgr = config.NewManagerWithOptions(opts...)
			if err := mgr.Load(); err != nil {
				return err
			}
			if logLevel != "" {
				mgr.Set("log_level", logLevel)
			}

			cfg, err := mgr.GetConfig()
			if err != nil {
				return err
			}

			l, err := newLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			logger = l

			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to apigen config file (default: search ./apigen.{yaml,json})")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newGenerateCommand())

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zl)
	return cfg.Build()
}

// Execute runs the root command, exiting the process with status 1 on
// failure, matching linkerd2's cli/main.go.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
