package output

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/domain/values"
)

var _ ports.BatchOutputFormatter = (*JUnitFormatter)(nil)

// JUnitFormatter formats run results as JUnit XML. Each interaction is one
// test case.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites is the JUnit XML document root.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Format writes the run result as JUnit XML.
func (f *JUnitFormatter) Format(result *execution.RunResult) error {
	return f.FormatAll([]*execution.RunResult{result})
}

// FormatAll writes one <testsuites> document with a suite per scenario.
func (f *JUnitFormatter) FormatAll(results []*execution.RunResult) error {
	suites := JUnitTestSuites{Name: "breachgate"}
	for _, result := range results {
		suites.Tests += result.Summary.TotalInteractions
		suites.Failures += result.Summary.FailedInteractions
		suites.Errors += result.Summary.ErrorInteractions
		suites.Time += result.Duration.Seconds()
		suites.TestSuites = append(suites.TestSuites, buildTestSuite(result))
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}

func buildTestSuite(result *execution.RunResult) JUnitTestSuite {
	suite := JUnitTestSuite{
		Name:     result.ScenarioName,
		Tests:    result.Summary.TotalInteractions,
		Failures: result.Summary.FailedInteractions,
		Errors:   result.Summary.ErrorInteractions,
		Skipped:  result.Summary.SkippedInteractions,
		Time:     result.Duration.Seconds(),
	}

	for _, in := range result.Interactions {
		c := JUnitTestCase{
			Name:      in.ID,
			ClassName: result.ScenarioName,
			Time:      in.Duration.Seconds(),
		}

		switch in.Status {
		case values.StatusFail:
			c.Failure = &JUnitFailure{
				Message: in.Message,
				Content: describeInteraction(in),
			}
		case values.StatusError:
			c.Error = &JUnitError{
				Message: in.Message,
				Content: describeInteraction(in),
			}
		case values.StatusSkipped:
			c.Skipped = &JUnitSkipped{
				Message: in.SkipReason,
			}
		}

		suite.TestCases = append(suite.TestCases, c)
	}
	return suite
}

func describeInteraction(in execution.InteractionResult) string {
	var b strings.Builder
	if in.DeviceID != "" {
		b.WriteString("Device: " + in.DeviceID + "\n")
	}
	b.WriteString("Before: " + joinKinds(in.Before) + "\n")
	after := make([]string, 0, len(in.Actions))
	for _, a := range in.Actions {
		after = append(after, string(a.Kind))
	}
	if len(after) == 0 {
		b.WriteString("After: (none)\n")
	} else {
		b.WriteString("After: " + strings.Join(after, ", ") + "\n")
	}
	for _, m := range in.Mismatches {
		b.WriteString("Mismatch: " + m + "\n")
	}
	return b.String()
}
