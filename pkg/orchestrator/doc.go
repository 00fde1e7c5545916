// Package orchestrator wires declarations, the template registry, field
// renderers and the save path behind a single entry point.
package orchestrator
