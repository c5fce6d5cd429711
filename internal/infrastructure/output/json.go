package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
)

var _ ports.BatchOutputFormatter = (*JSONFormatter)(nil)

// JSONFormatter formats run results as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: indent}
}

// Format writes the run result as JSON.
func (f *JSONFormatter) Format(result *execution.RunResult) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(result)
}

// FormatAll writes one result as an object and several as a JSON array.
func (f *JSONFormatter) FormatAll(results []*execution.RunResult) error {
	if len(results) == 1 {
		return f.Format(results[0])
	}
	if results == nil {
		results = []*execution.RunResult{}
	}
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(results)
}
