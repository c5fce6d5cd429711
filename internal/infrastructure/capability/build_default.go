//go:build !breachgate_noext

package capability

const extensionCompiledIn = true
