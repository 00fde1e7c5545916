// Package normalize strips unchanged template values from records before
// they are validated and persisted.
package normalize

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/record"
)

// HookName identifies the normalizer in a record lifecycle.
const HookName = "templated.remove_unchanged_template_values"

// SpecSource lists the template specs declared for a record type.
type SpecSource interface {
	Specs(recordType string) []attr.Spec
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger routes debug output to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// Normalizer writes nil back to templated attributes left at their template.
type Normalizer struct {
	source SpecSource
	logger zerolog.Logger
}

// New constructs a Normalizer reading specs from source.
func New(source SpecSource, options ...Option) *Normalizer {
	n := &Normalizer{source: source, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	return n
}

// Unchanged reports whether value should be persisted as nil under spec: it is
// nil, blank, or equal to the template once trimmed.
func Unchanged(spec attr.Spec, value *string) bool {
	if value == nil {
		return true
	}
	trimmed := strings.TrimSpace(*value)
	return trimmed == "" || trimmed == spec.Value
}

// Normalize clears every templated attribute of rec that still holds its
// template value. Attributes without a spec are never touched.
func (n *Normalizer) Normalize(ctx context.Context, rec record.Record) error {
	if n == nil || n.source == nil || rec == nil {
		return nil
	}
	recordType := record.TypeName(rec.RecordType())

	for _, spec := range n.source.Specs(recordType) {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, err := rec.ReadAttribute(spec.Attribute)
		if err != nil {
			return fmt.Errorf("normalize: read %s.%s: %w", recordType, spec.Attribute, err)
		}
		if !Unchanged(spec, value) {
			continue
		}
		if value == nil {
			continue
		}

		if err := rec.WriteAttribute(spec.Attribute, nil); err != nil {
			return fmt.Errorf("normalize: write %s.%s: %w", recordType, spec.Attribute, err)
		}
		n.logger.Debug().
			Str("record_type", recordType).
			Str("attribute", spec.Attribute).
			Str("kind", spec.Kind.String()).
			Msg("cleared unchanged template value")
	}
	return nil
}

// Hook adapts Normalize for record.Lifecycle installation.
func (n *Normalizer) Hook() record.HookFunc {
	return n.Normalize
}
