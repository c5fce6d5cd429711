// Package capability resolves whether the breach extension is available to
// this process. The answer is computed once, at startup, and never changes.
package capability

import (
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/reglet-dev/breachgate/internal/infrastructure/system"
)

// Gate is the resolved extension flag. It is immutable.
type Gate struct {
	reason  string
	version string
	enabled bool
}

// Enabled reports whether the active curator should be used.
func (g Gate) Enabled() bool { return g.enabled }

// Reason explains how the gate was resolved.
func (g Gate) Reason() string { return g.reason }

// Version is the extension version that satisfied the gate, if any.
func (g Gate) Version() string { return g.version }

// Open returns a gate that is always open. Used by tests and embedders
// that do not read a system config.
func Open() Gate {
	return Gate{enabled: true, reason: "forced on"}
}

// Disabled returns a gate that is always closed for the given reason.
func Disabled(reason string) Gate {
	return Gate{reason: reason}
}

// Resolve computes the gate from the build and the system config.
func Resolve(cfg *system.Config, logger *slog.Logger) Gate {
	return resolve(extensionCompiledIn, cfg, logger)
}

func resolve(compiledIn bool, cfg *system.Config, logger *slog.Logger) Gate {
	if logger == nil {
		logger = slog.Default()
	}

	gate := decide(compiledIn, cfg)
	if gate.enabled {
		logger.Debug("breach extension enabled", "version", gate.version)
	} else {
		logger.Info("breach extension disabled", "reason", gate.reason)
	}
	return gate
}

func decide(compiledIn bool, cfg *system.Config) Gate {
	if !compiledIn {
		return Gate{reason: "built without extension support (breachgate_noext)"}
	}
	if cfg == nil || !cfg.Extension.Enabled {
		return Gate{reason: "extension disabled in system config"}
	}

	ext := cfg.Extension
	if ext.Require == "" {
		return Gate{enabled: true, version: ext.Version, reason: "enabled in system config"}
	}
	if ext.Version == "" {
		return Gate{reason: fmt.Sprintf("extension version unknown, %q cannot be checked", ext.Require)}
	}

	v, err := semver.NewVersion(ext.Version)
	if err != nil {
		return Gate{reason: fmt.Sprintf("invalid extension version %q: %v", ext.Version, err)}
	}
	c, err := semver.NewConstraint(ext.Require)
	if err != nil {
		return Gate{reason: fmt.Sprintf("invalid extension constraint %q: %v", ext.Require, err)}
	}
	if !c.Check(v) {
		return Gate{reason: fmt.Sprintf("extension version %s does not satisfy %q", v, ext.Require)}
	}

	return Gate{
		enabled: true,
		version: v.String(),
		reason:  fmt.Sprintf("extension %s satisfies %q", v, ext.Require),
	}
}
