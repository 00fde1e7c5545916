// Package tui fills templated attributes from the terminal using survey
// prompts.
package tui
