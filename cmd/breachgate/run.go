package main

import (
	"fmt"
	"io"
	"os"

	"github.com/reglet-dev/breachgate/internal/application/dto"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/domain/repositories"
	"github.com/reglet-dev/breachgate/internal/infrastructure/persistence/memory"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type runOptions struct {
	CommonOptions
	outFile string
	filters dto.FilterOptions
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	opts := runOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Curate every interaction of one or more scenarios",
		Long: `Load each scenario, curate the action list of every selected interaction
and compare the result with the interaction's expectations. Scenario files are
processed concurrently; each file gets its own world state.

Filtering:
  --tags door,camera             Run interactions with 'door' OR 'camera' tags
  --interaction front-door       Run specific interactions (exclusive)
  --exclude-tags slow            Exclude interactions with 'slow' tag
  --exclude-interaction flaky    Exclude specific interactions
  --filter "locked && 'camera' in tags"
                                 Advanced filtering expression

The command exits non-zero when any interaction fails or errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(v, func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			opts.Load(cc.Viper)
			opts.outFile = cc.Viper.GetString("output")
			opts.filters = dto.FilterOptions{
				FilterExpression:      cc.Viper.GetString("filter"),
				IncludeTags:           cc.Viper.GetStringSlice("tags"),
				ExcludeTags:           cc.Viper.GetStringSlice("exclude-tags"),
				IncludeInteractionIDs: cc.Viper.GetStringSlice("interaction"),
				ExcludeInteractionIDs: cc.Viper.GetStringSlice("exclude-interaction"),
			}
			return runScenarios(cc, cmd.OutOrStdout(), opts, args)
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Int("concurrency", 0, "Maximum scenario files run at once (default: number of CPUs)")
	cmd.Flags().StringSlice("tags", nil, "Run interactions with these tags (comma-separated)")
	cmd.Flags().StringSlice("exclude-tags", nil, "Exclude interactions with these tags (comma-separated)")
	cmd.Flags().StringSlice("interaction", nil, "Run specific interactions by ID (exclusive, comma-separated)")
	cmd.Flags().StringSlice("exclude-interaction", nil, "Exclude specific interactions by ID (comma-separated)")
	cmd.Flags().String("filter", "", "Advanced filter expression (e.g. \"breached || 'door' in tags\")")

	return cmd
}

func runScenarios(cc *CommandContext, stdout io.Writer, opts runOptions, paths []string) error {
	if err := opts.ValidateFlags(); err != nil {
		return err
	}

	ctx, cancel := opts.ApplyToContext(cc.Context)
	defer cancel()

	useCase := cc.Container.RunScenarioUseCase()
	var results repositories.RunResultRepository = memory.NewRunResultRepository()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cc.Container.RuntimeConfig().MaxConcurrentScenarios)

	for _, path := range paths {
		g.Go(func() error {
			resp, err := useCase.Execute(gctx, dto.RunScenarioRequest{
				ScenarioPath: path,
				Filters:      opts.filters,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			for _, w := range resp.Diagnostics.Warnings {
				cc.Logger.Warn(w, "scenario", path)
			}
			cc.Logger.Info("scenario complete",
				"scenario", path,
				"duration", resp.RunResult.Duration,
				"passed", resp.RunResult.Summary.PassedInteractions,
				"failed", resp.RunResult.Summary.FailedInteractions,
				"errors", resp.RunResult.Summary.ErrorInteractions,
				"skipped", resp.RunResult.Summary.SkippedInteractions)
			return results.Save(gctx, resp.RunResult)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	writer := stdout
	if opts.outFile != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(opts.outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()
		writer = file
		cc.Logger.Info("writing output", "file", opts.outFile, "format", opts.Format)
	}

	all := results.List(ctx)
	if err := writeResults(cc.Container.Formatters(), writer, opts.Format, all); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return checkResults(all)
}

// writeResults writes every result as one document when the formatter
// supports it, so structured formats stay parseable for several files.
func writeResults(factory ports.OutputFormatterFactory, w io.Writer, format string, results []*execution.RunResult) error {
	var scenarioPath string
	if len(results) == 1 {
		scenarioPath = results[0].ScenarioPath
	}
	formatter, err := factory.Create(format, w, ports.FormatterOptions{
		ScenarioPath: scenarioPath,
		Indent:       true,
	})
	if err != nil {
		return err
	}

	if batch, ok := formatter.(ports.BatchOutputFormatter); ok {
		return batch.FormatAll(results)
	}
	for _, result := range results {
		if err := formatter.Format(result); err != nil {
			return err
		}
	}
	return nil
}

// checkResults turns failing or erroring interactions into a command error
// so the process exits non-zero.
func checkResults(results []*execution.RunResult) error {
	var passed, failed, errored int
	for _, r := range results {
		passed += r.Summary.PassedInteractions
		failed += r.Summary.FailedInteractions
		errored += r.Summary.ErrorInteractions
	}
	if failed > 0 || errored > 0 {
		return fmt.Errorf("run failed: %d passed, %d failed, %d errors", passed, failed, errored)
	}
	return nil
}
