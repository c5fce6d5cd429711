package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/domain/values"
)

// Scenario files larger than this are referenced but not embedded.
const maxEmbeddedScenarioSize = 512 * 1024

type sarifMapper struct {
	result       *execution.RunResult
	scenarioPath string
	cwd          string
}

func newSARIFMapper(result *execution.RunResult, scenarioPath string) *sarifMapper {
	cwd, _ := os.Getwd()
	return &sarifMapper{
		result:       result,
		scenarioPath: scenarioPath,
		cwd:          cwd,
	}
}

func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRules(run)
	m.addResults(run)
	m.addArtifact(run)
	m.addInvocation(run)
	m.addProperties(run)
}

func (m *sarifMapper) addRules(run *sarif.Run) {
	for _, in := range m.result.Interactions {
		rule := sarif.NewReportingDescriptor().WithID(in.ID)
		rule.WithName(in.ID)

		desc := in.Description
		if desc == "" {
			desc = fmt.Sprintf("Curated action list of interaction %s", in.ID)
		}
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &desc})
		rule.WithFullDescription(&sarif.MultiformatMessageString{Text: &desc})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})

		props := sarif.NewPropertyBag()
		if len(in.Tags) > 0 {
			props.WithTags(in.Tags)
		}
		if in.DeviceID != "" {
			props.Add("device", in.DeviceID)
		}
		rule.WithProperties(props)

		run.Tool.Driver.AddRule(rule)
	}
}

func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, in := range m.result.Interactions {
		run.AddResult(m.mapInteractionResult(in))
	}
}

func (m *sarifMapper) mapInteractionResult(in execution.InteractionResult) *sarif.Result {
	result := sarif.NewRuleResult(in.ID)
	result.Level = m.mapStatusToLevel(in.Status)
	result.Kind = m.mapStatusToKind(in.Status)

	msg := in.Message
	if msg == "" {
		msg = m.generateDefaultMessage(in)
	}
	if len(in.Mismatches) > 0 {
		msg += ": " + strings.Join(in.Mismatches, "; ")
	}
	result.Message = sarif.NewTextMessage(msg)

	if m.scenarioPath != "" {
		loc := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(m.scenarioPath))),
		)
		result.Locations = []*sarif.Location{loc}
	}

	props := sarif.NewPropertyBag()
	props.Add("before", in.Before)
	props.Add("actions", in.Actions)
	props.Add("slotOpened", in.SlotOpened)
	props.Add("duration_ms", in.Duration.Milliseconds())
	if in.InsertedID != "" {
		props.Add("insertedId", in.InsertedID)
	}
	if len(in.Tags) > 0 {
		props.WithTags(in.Tags)
	}
	if in.SkipReason != "" {
		props.Add("skipReason", in.SkipReason)
	}
	result.WithProperties(props)

	return result
}

func (m *sarifMapper) mapStatusToLevel(status values.Status) string {
	switch status {
	case values.StatusPass:
		return "note"
	case values.StatusFail, values.StatusError:
		return "error"
	case values.StatusSkipped:
		return "none"
	default:
		return "warning"
	}
}

func (m *sarifMapper) mapStatusToKind(status values.Status) string {
	switch status {
	case values.StatusPass:
		return "pass"
	case values.StatusSkipped:
		return "notApplicable"
	default:
		return "fail"
	}
}

// normalizeURI converts a file path to a SARIF-compliant URI, relative to
// the working directory when possible.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return "file://" + filepath.ToSlash(abs)
}

// addArtifact registers the scenario file, embedding its contents when small
// enough so viewers can show the interaction source.
func (m *sarifMapper) addArtifact(run *sarif.Run) {
	if m.scenarioPath == "" {
		return
	}

	artifact := sarif.NewArtifact().
		WithLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(m.scenarioPath)))

	if info, err := os.Stat(m.scenarioPath); err == nil && !info.IsDir() {
		artifact.WithLength(int(info.Size()))
		if info.Size() < maxEmbeddedScenarioSize {
			//nolint:gosec // G304: scenario path was already loaded by the run
			if content, err := os.ReadFile(m.scenarioPath); err == nil {
				artifact.WithContents(sarif.NewArtifactContent().WithText(string(content)))
			}
		}
	}

	run.AddArtifact(artifact)
}

func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(m.result.Summary.ErrorInteractions == 0)

	startTime := m.result.StartTime.UTC().Format("2006-01-02T15:04:05.000Z")
	endTime := m.result.EndTime.UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &startTime
	invocation.EndTimeUtc = &endTime

	if hostname, err := os.Hostname(); err == nil {
		invocation.Machine = &hostname
	}
	if m.cwd != "" {
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI("file://" + filepath.ToSlash(m.cwd))
	}

	props := sarif.NewPropertyBag()
	props.Add("scenarioName", m.result.ScenarioName)
	props.Add("scenarioVersion", m.result.ScenarioVersion)
	props.Add("runId", m.result.RunID.String())
	props.Add("extensionActive", m.result.ExtensionActive)
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}

func (m *sarifMapper) addProperties(run *sarif.Run) {
	props := sarif.NewPropertyBag()
	props.Add("summary", m.result.Summary)
	run.WithProperties(props)
}

func (m *sarifMapper) generateDefaultMessage(in execution.InteractionResult) string {
	switch in.Status {
	case values.StatusPass:
		return fmt.Sprintf("Interaction %s curated as expected", in.ID)
	case values.StatusFail:
		return fmt.Sprintf("Interaction %s did not curate as expected", in.ID)
	case values.StatusError:
		return fmt.Sprintf("Interaction %s encountered an error", in.ID)
	case values.StatusSkipped:
		return fmt.Sprintf("Interaction %s was skipped", in.ID)
	default:
		return fmt.Sprintf("Interaction %s completed with status %s", in.ID, in.Status)
	}
}

func ptrBool(b bool) *bool {
	return &b
}
