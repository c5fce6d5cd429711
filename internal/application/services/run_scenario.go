// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reglet-dev/breachgate/internal/application/dto"
	apperrors "github.com/reglet-dev/breachgate/internal/application/errors"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	domainservices "github.com/reglet-dev/breachgate/internal/domain/services"
	"github.com/reglet-dev/breachgate/internal/domain/values"
)

// Session bundles the world state and the curation pipeline for one
// scenario run. Sessions are never shared between runs.
type Session struct {
	World  ports.WorldSeeder
	Curate *CurateActionsUseCase
}

// SessionFactory creates a fresh Session.
type SessionFactory func() *Session

// RunScenarioUseCase loads a scenario and curates every selected interaction.
type RunScenarioUseCase struct {
	loader     ports.ScenarioLoader
	validator  ports.ScenarioValidator
	gate       ports.CapabilityGate
	newSession SessionFactory
	checker    *domainservices.ExpectationChecker
	version    string
	logger     *slog.Logger
}

// NewRunScenarioUseCase creates a new run scenario use case.
func NewRunScenarioUseCase(
	loader ports.ScenarioLoader,
	validator ports.ScenarioValidator,
	gate ports.CapabilityGate,
	newSession SessionFactory,
	version string,
	logger *slog.Logger,
) *RunScenarioUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunScenarioUseCase{
		loader:     loader,
		validator:  validator,
		gate:       gate,
		newSession: newSession,
		checker:    domainservices.NewExpectationChecker(),
		version:    version,
		logger:     logger,
	}
}

// Execute runs the complete scenario workflow.
func (uc *RunScenarioUseCase) Execute(ctx context.Context, req dto.RunScenarioRequest) (*dto.RunScenarioResponse, error) {
	startTime := time.Now()

	uc.logger.Info("loading scenario", "path", req.ScenarioPath)

	scenario, err := uc.loader.LoadScenario(req.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	if uc.validator != nil {
		if err := uc.validator.Validate(scenario); err != nil {
			return nil, fmt.Errorf("scenario validation failed: %w", err)
		}
	}

	filter, err := BuildInteractionFilter(scenario, req.Filters)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("scenario loaded", "name", scenario.Metadata.Name, "interactions", len(scenario.Interactions))

	result := execution.NewRunResult(scenario.Metadata.Name, scenario.Metadata.Version)
	result.BreachgateVersion = uc.version
	result.ScenarioPath = req.ScenarioPath

	session := uc.newSession()
	result.ExtensionActive = session.Curate.Curator().Active()

	for i := range scenario.Interactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in := &scenario.Interactions[i]
		result.AddInteractionResult(uc.runInteraction(ctx, session, filter, in, i))
	}

	result.Finalize()

	resp := &dto.RunScenarioResponse{
		RunResult: result,
		Metadata: dto.ResponseMetadata{
			RequestID:   req.Metadata.RequestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}
	if uc.gate != nil {
		resp.Diagnostics.Gate = dto.GateDiagnostics{Enabled: uc.gate.Enabled(), Reason: uc.gate.Reason()}
		if !uc.gate.Enabled() {
			resp.Diagnostics.Warnings = append(resp.Diagnostics.Warnings,
				"extension unavailable, action lists were left unmodified: "+uc.gate.Reason())
		}
	}

	return resp, nil
}

func (uc *RunScenarioUseCase) runInteraction(
	ctx context.Context,
	session *Session,
	filter *domainservices.InteractionFilter,
	in *entities.Interaction,
	index int,
) execution.InteractionResult {
	start := time.Now()
	ir := execution.InteractionResult{
		ID:          in.ID,
		Description: in.Description,
		Subject:     in.Subject,
		Tags:        in.Tags,
		Index:       index,
	}
	if in.Device != nil {
		ir.DeviceID = in.Device.ID
	}

	if ok, reason := filter.ShouldRun(in); !ok {
		ir.Status = values.StatusSkipped
		ir.SkipReason = reason
		return ir
	}

	session.World.Reset()
	if err := session.World.Seed(ctx, in); err != nil {
		ir.Status = values.StatusError
		ir.Message = fmt.Sprintf("failed to seed world state: %v", err)
		ir.Duration = time.Since(start)
		return ir
	}

	list := in.BuildList()
	ir.Before = list.Kinds()

	ictx := actions.WithSubject(ctx, in.SubjectHandle())
	outcome, err := session.Curate.Curate(ictx, in.Device, &list)
	ir.SlotOpened = outcome.SlotOpened
	if outcome.Inserted != nil {
		ir.InsertedID = outcome.Inserted.ID
	}
	ir.Actions = snapshot(list)
	ir.Duration = time.Since(start)

	if err != nil {
		uc.logger.Error("curation failed", "interaction", in.ID, "error", err)
		ir.Status = values.StatusError
		ir.Message = err.Error()
		return ir
	}

	ir.Status, ir.Mismatches = uc.checker.Check(in.Expect, outcome.SlotOpened, list)
	if ir.Status == values.StatusFail {
		ir.Message = fmt.Sprintf("%d expectation(s) not met", len(ir.Mismatches))
	}
	uc.logger.Debug("interaction curated", "interaction", in.ID, "status", ir.Status, "slot_opened", ir.SlotOpened)
	return ir
}

// BuildInteractionFilter validates the filter options against the scenario
// and compiles them.
func BuildInteractionFilter(scenario *entities.Scenario, opts dto.FilterOptions) (*domainservices.InteractionFilter, error) {
	for _, id := range opts.IncludeInteractionIDs {
		if !scenario.HasInteraction(id) {
			return nil, apperrors.NewValidationError("interaction", fmt.Sprintf("--interaction references non-existent interaction: %s", id))
		}
	}
	for _, id := range opts.ExcludeInteractionIDs {
		if !scenario.HasInteraction(id) {
			return nil, apperrors.NewValidationError("exclude-interaction", fmt.Sprintf("--exclude-interaction references non-existent interaction: %s", id))
		}
	}

	filter := domainservices.NewInteractionFilter().
		WithExclusiveInteractions(opts.IncludeInteractionIDs).
		WithExcludedInteractions(opts.ExcludeInteractionIDs).
		WithIncludedTags(opts.IncludeTags).
		WithExcludedTags(opts.ExcludeTags)

	if opts.FilterExpression != "" {
		program, err := domainservices.CompileFilterExpression(opts.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", "invalid --filter expression", err.Error())
		}
		filter.WithFilterExpression(program)
	}
	return filter, nil
}

func snapshot(list actions.List) []actions.Action {
	out := make([]actions.Action, 0, len(list))
	for _, a := range list {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}
