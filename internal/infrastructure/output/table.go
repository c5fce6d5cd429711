package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/domain/values"
)

const (
	colorReset  = color.Reset
	colorRed    = color.FgRed
	colorGreen  = color.FgGreen
	colorYellow = color.FgYellow
	colorGray   = color.FgHiBlack
	colorCyan   = color.FgCyan
	colorBold   = color.Bold
)

var _ ports.BatchOutputFormatter = (*TableFormatter)(nil)

// TableFormatter formats run results as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true,
	}
}

// colorize forces color on when enabled so output stays colored even when
// the writer is not a terminal.
func (f *TableFormatter) colorize(text string, attr color.Attribute) string {
	if !f.EnableColor {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

// FormatAll writes each result as its own table, one after another.
func (f *TableFormatter) FormatAll(results []*execution.RunResult) error {
	for _, result := range results {
		if err := f.Format(result); err != nil {
			return err
		}
	}
	return nil
}

// Format writes the run result as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(result *execution.RunResult) error {
	rule := f.colorize(strings.Repeat("─", 80), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Scenario: %s", f.colorize(result.ScenarioName, colorBold))
	if result.ScenarioVersion != "" {
		fmt.Fprintf(f.writer, " (v%s)", result.ScenarioVersion)
	}
	fmt.Fprintln(f.writer)
	if result.ScenarioPath != "" {
		fmt.Fprintf(f.writer, "File: %s\n", result.ScenarioPath)
	}
	fmt.Fprintf(f.writer, "Executed: %s\n", result.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	if result.ExtensionActive {
		fmt.Fprintf(f.writer, "Extension: %s\n", f.colorize("active", colorGreen))
	} else {
		fmt.Fprintf(f.writer, "Extension: %s\n", f.colorize("inert", colorYellow))
	}
	fmt.Fprintln(f.writer)

	if len(result.Interactions) == 0 {
		fmt.Fprintln(f.writer, "No interactions curated.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Interactions:", colorBold))
	fmt.Fprintln(f.writer, rule)
	for _, in := range result.Interactions {
		f.formatInteraction(in)
	}
	fmt.Fprintln(f.writer, rule)
	fmt.Fprintln(f.writer)

	f.formatSummary(result.Summary)
	return nil
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatInteraction(in execution.InteractionResult) {
	symbol, style := f.getStatusInfo(in.Status)
	fmt.Fprintf(f.writer, "%s %s", f.colorize(symbol, style), f.colorize(in.ID, style))
	if in.DeviceID != "" {
		fmt.Fprintf(f.writer, " (device %s)", in.DeviceID)
	}
	fmt.Fprintln(f.writer)

	if in.Description != "" {
		fmt.Fprintf(f.writer, "  Description: %s\n", in.Description)
	}
	if len(in.Tags) > 0 {
		fmt.Fprintf(f.writer, "  Tags: %s\n", strings.Join(in.Tags, ", "))
	}

	fmt.Fprintf(f.writer, "  Status: %s\n", f.colorize(strings.ToUpper(string(in.Status)), style))
	if in.Message != "" {
		fmt.Fprintf(f.writer, "  Message: %s\n", in.Message)
	}
	if in.SkipReason != "" {
		fmt.Fprintf(f.writer, "  Skip Reason: %s\n", in.SkipReason)
		fmt.Fprintln(f.writer)
		return
	}

	fmt.Fprintf(f.writer, "  Before: %s\n", joinKinds(in.Before))
	fmt.Fprintf(f.writer, "  After:  %s\n", f.formatActions(in.Actions))
	if in.SlotOpened {
		slot := "opened"
		if in.InsertedID != "" {
			slot += ", inserted " + in.InsertedID
		}
		fmt.Fprintf(f.writer, "  Slot: %s\n", f.colorize(slot, colorCyan))
	}

	if len(in.Mismatches) > 0 {
		fmt.Fprintf(f.writer, "  %s:\n", f.colorize("Failed Expectations", colorRed))
		for _, m := range in.Mismatches {
			fmt.Fprintf(f.writer, "    - %s\n", f.colorize(m, colorYellow))
		}
	}

	fmt.Fprintf(f.writer, "  Duration: %s\n", in.Duration.Round(time.Microsecond))
	fmt.Fprintln(f.writer)
}

func (f *TableFormatter) formatActions(list []actions.Action) string {
	if len(list) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(list))
	for _, a := range list {
		s := string(a.Kind)
		if a.QuickhackDisplay {
			s += "*"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func joinKinds(kinds []actions.Kind) string {
	if len(kinds) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ", ")
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(summary execution.ResultSummary) {
	fmt.Fprintln(f.writer, f.colorize("Summary:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	fmt.Fprintf(f.writer, "Interactions: %d total\n", summary.TotalInteractions)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.PassedInteractions)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.FailedInteractions)
	fmt.Fprintf(f.writer, "  %s Errors:   %d\n", f.colorize("⚠", colorYellow), summary.ErrorInteractions)
	fmt.Fprintf(f.writer, "  %s Skipped:  %d\n", f.colorize("⊘", colorGray), summary.SkippedInteractions)
	fmt.Fprintln(f.writer)
	fmt.Fprintf(f.writer, "Slots opened: %d\n", summary.SlotsOpened)
	fmt.Fprintf(f.writer, "Replacements: %d\n", summary.Replacements)

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
}

func (f *TableFormatter) getStatusInfo(status values.Status) (string, color.Attribute) {
	switch status {
	case values.StatusPass:
		return "✓", colorGreen
	case values.StatusFail:
		return "✗", colorRed
	case values.StatusError:
		return "⚠", colorYellow
	case values.StatusSkipped:
		return "⊘", colorGray
	default:
		return "?", colorReset
	}
}
