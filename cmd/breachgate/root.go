package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each tree owns its own viper instance
// so flag, env and file settings never leak between invocations.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "breachgate",
		Short: "Curate breach actions offered for a device",
		Long: `breachgate decides which breach actions a device may offer, removes stale
or superseded entries and flags alternate breaches for quickhack display.

Scenarios record device interactions together with the world state at that
moment. "breachgate run" curates every interaction and checks the result
against the scenario's expectations.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v, cmd); err != nil {
				return err
			}
			setupLogging(v.GetBool("verbose"), v.GetBool("quiet"))
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "system config file (default is $HOME/.breachgate/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable verbose output")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("no-extension", false, "force the inert curator regardless of config")
	flags.Bool("no-color", false, "disable colored table output")

	rootCmd.AddCommand(newRunCmd(v), newGateCmd(v), newVersionCmd())
	return rootCmd
}

// initConfig binds flags and BREACHGATE_* environment variables, then loads
// CLI defaults from $HOME/.breachgate/cli.yaml when present.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("BREACHGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(filepath.Join(home, ".breachgate"))
	v.SetConfigType("yaml")
	v.SetConfigName("cli")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	slog.Debug("using CLI config file", "file", v.ConfigFileUsed())
	return nil
}

func setupLogging(verbose, quiet bool) {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
