//go:build breachgate_noext

// Builds tagged breachgate_noext never enable the extension, whatever the
// system config says.

package capability

const extensionCompiledIn = false
