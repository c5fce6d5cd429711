// Package output provides formatters for breachgate run results.
package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
)

var _ ports.BatchOutputFormatter = (*SARIFFormatter)(nil)

// SARIFFormatter formats run results as SARIF 2.1.0 JSON.
// Interactions become rules; their outcomes become results located in the
// scenario file.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout, "lobby.yaml")
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer       io.Writer
	scenarioPath string
}

// NewSARIFFormatter creates a new SARIF formatter.
// scenarioPath is used for result locations; when empty the result's own
// ScenarioPath is used.
func NewSARIFFormatter(writer io.Writer, scenarioPath string) *SARIFFormatter {
	return &SARIFFormatter{
		writer:       writer,
		scenarioPath: scenarioPath,
	}
}

// Format writes the run result as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(result *execution.RunResult) error {
	return f.FormatAll([]*execution.RunResult{result})
}

// FormatAll writes one SARIF log with a run per scenario. The configured
// scenario path only applies when there is a single result.
func (f *SARIFFormatter) FormatAll(results []*execution.RunResult) error {
	report := sarif.NewReport()

	for _, result := range results {
		path := result.ScenarioPath
		if f.scenarioPath != "" && len(results) == 1 {
			path = f.scenarioPath
		}
		report.AddRun(newSARIFRun(result, path))
	}

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func newSARIFRun(result *execution.RunResult, path string) *sarif.Run {
	run := sarif.NewRunWithInformationURI("breachgate", "https://github.com/reglet-dev/breachgate")
	if result.BreachgateVersion != "" {
		version := result.BreachgateVersion
		run.Tool.Driver.Version = &version
	}
	run.Tool.Driver.Organization = ptrString("reglet-dev")

	newSARIFMapper(result, path).mapToRun(run)
	return run
}

func ptrString(s string) *string {
	return &s
}
