package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
)

var _ ports.BatchOutputFormatter = (*YAMLFormatter)(nil)

// YAMLFormatter formats run results as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the run result as YAML.
func (f *YAMLFormatter) Format(result *execution.RunResult) error {
	return f.encode(result)
}

// FormatAll writes one result as a mapping and several as a sequence.
func (f *YAMLFormatter) FormatAll(results []*execution.RunResult) error {
	if len(results) == 1 {
		return f.encode(results[0])
	}
	if results == nil {
		results = []*execution.RunResult{}
	}
	return f.encode(results)
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}
