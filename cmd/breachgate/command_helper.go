package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/breachgate/internal/infrastructure/container"
	"github.com/reglet-dev/breachgate/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
	Viper     *viper.Viper
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "gate",
//	    RunE: withContainer(v, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        return printGate(cmd.OutOrStdout(), ctx.Container.Gate())
//	    }),
//	}
func withContainer(v *viper.Viper, handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		c, err := container.New(container.Options{
			Logger:           logger,
			SystemConfigPath: v.GetString("config"),
			Version:          version.Get().Version,
			Concurrency:      v.GetInt("concurrency"),
			DisableExtension: v.GetBool("no-extension"),
			NoColor:          v.GetBool("no-color"),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return handler(&CommandContext{
			Container: c,
			Logger:    logger,
			Context:   ctx,
			Viper:     v,
		}, cmd, args)
	}
}
