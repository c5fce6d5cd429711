package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/reglet-dev/breachgate/internal/infrastructure/capability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type gateReport struct {
	Reason  string `json:"reason"`
	Version string `json:"version,omitempty"`
	Enabled bool   `json:"enabled"`
}

func newGateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Show whether the breach extension is enabled",
		Long: `Resolve the capability gate the same way "run" does and print the result.
The gate is closed when the binary was built with the breachgate_noext tag,
when extension.enabled is false, or when extension.version does not satisfy
extension.require.`,
		Args: cobra.NoArgs,
		RunE: withContainer(v, func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
			return printGate(cmd.OutOrStdout(), cc.Container.Gate(), cc.Viper.GetBool("json"))
		}),
	}
	cmd.Flags().Bool("json", false, "print the gate as JSON")
	return cmd
}

func printGate(w io.Writer, gate capability.Gate, asJSON bool) error {
	report := gateReport{Enabled: gate.Enabled(), Reason: gate.Reason(), Version: gate.Version()}
	if asJSON {
		return json.NewEncoder(w).Encode(report)
	}

	state := "disabled"
	if report.Enabled {
		state = "enabled"
	}
	if _, err := fmt.Fprintf(w, "extension: %s\nreason:    %s\n", state, report.Reason); err != nil {
		return err
	}
	if report.Version != "" {
		_, err := fmt.Fprintf(w, "version:   %s\n", report.Version)
		return err
	}
	return nil
}
