package templated

import (
	"context"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/orchestrator"
	"github.com/goliatone/go-templated/pkg/render"
	theme "github.com/goliatone/go-theme"
)

// Spec aliases attr.Spec so callers can inspect declarations from the root
// package.
type Spec = attr.Spec

// Options aliases the raw declaration options.
type Options = attr.Options

// FieldOptions describes per-field rendering overrides.
type FieldOptions = render.FieldOptions

// StartingValue declares an editable prefix such as "http://".
func StartingValue(value string) Options {
	return attr.StartingValue(value)
}

// Label declares a template standing in for the field label.
func Label(value string) Options {
	return attr.Label(value)
}

// New exposes the orchestrator constructor from the top-level module.
func New(ctx context.Context, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(ctx, options...)
}

// WithThemeSelector passes a go-theme selector through to the vanilla
// renderer so the templated colour follows the selected theme.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}
