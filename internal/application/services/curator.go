package services

import (
	"log/slog"

	"github.com/reglet-dev/breachgate/internal/application/ports"
)

// CuratorFactory binds the selected curator implementation to a set of
// oracles. Each scenario run gets its own oracles, so the binding happens
// per run while the implementation choice does not.
type CuratorFactory func(breach ports.BreachStateOracle, locks ports.LockPenaltyOracle) ports.BreachCurator

// SelectCurator chooses the curator implementation for the process. It is
// called once at startup with the resolved gate; a nil gate selects the
// inert set. The gate is not consulted again by the returned factory.
func SelectCurator(gate ports.CapabilityGate, logger *slog.Logger) CuratorFactory {
	if logger == nil {
		logger = slog.Default()
	}
	if gate == nil || !gate.Enabled() {
		reason := "no capability gate"
		if gate != nil {
			reason = gate.Reason()
		}
		logger.Debug("extension unavailable, using inert curator", "reason", reason)
		return func(ports.BreachStateOracle, ports.LockPenaltyOracle) ports.BreachCurator {
			return InertCurator{}
		}
	}

	logger.Debug("extension available, using action filter")
	return func(breach ports.BreachStateOracle, locks ports.LockPenaltyOracle) ports.BreachCurator {
		return NewActionFilter(breach, locks, logger)
	}
}

// NewCurator selects and binds a curator in one step.
func NewCurator(
	gate ports.CapabilityGate,
	breach ports.BreachStateOracle,
	locks ports.LockPenaltyOracle,
	logger *slog.Logger,
) ports.BreachCurator {
	return SelectCurator(gate, logger)(breach, locks)
}
