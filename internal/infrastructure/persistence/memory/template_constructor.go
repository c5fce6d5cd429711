package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
)

var _ ports.ActionConstructor = (*TemplateConstructor)(nil)

// TemplateConstructor builds replacement alternate breach actions from a
// fixed display name.
type TemplateConstructor struct {
	name string
}

// NewTemplateConstructor creates a constructor producing actions called name.
func NewTemplateConstructor(name string) *TemplateConstructor {
	return &TemplateConstructor{name: name}
}

// Construct implements ports.ActionConstructor.
func (c *TemplateConstructor) Construct(ctx context.Context, device *actions.Device) (*actions.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !device.Valid() {
		return nil, fmt.Errorf("cannot construct action for invalid device")
	}
	return &actions.Action{
		ID:   fmt.Sprintf("%s-%s", device.ID, uuid.NewString()),
		Name: c.name,
		Kind: actions.KindAlternateBreach,
	}, nil
}
