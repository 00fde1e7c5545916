// Package registry stores template specs per record type and wires the
// save-time normalizer into each declaring record type's lifecycle.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/normalize"
	"github.com/goliatone/go-templated/pkg/record"
)

// Option customises a Registry.
type Option func(*Registry)

// WithLifecycle installs the normalizer hook on lifecycle whenever a record
// type declares its first templated attribute.
func WithLifecycle(lifecycle *record.Lifecycle) Option {
	return func(r *Registry) {
		r.lifecycle = lifecycle
	}
}

// WithLogger routes registry and normalizer logs to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithStrictRedeclare turns redeclaring an attribute into a configuration
// error instead of replacing the previous spec.
func WithStrictRedeclare() Option {
	return func(r *Registry) {
		r.strict = true
	}
}

type entry struct {
	spec  attr.Spec
	order int
}

// Registry maps record types to their templated attributes.
type Registry struct {
	mu        sync.RWMutex
	specs     map[string]map[string]entry
	lifecycle *record.Lifecycle
	logger    zerolog.Logger
	strict    bool
	seq       int

	normalizer *normalize.Normalizer
}

// New constructs an empty registry. Without WithLifecycle a private lifecycle
// is created; Lifecycle exposes it to the save path.
func New(options ...Option) *Registry {
	r := &Registry{
		specs:  make(map[string]map[string]entry),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.lifecycle == nil {
		r.lifecycle = record.NewLifecycle()
	}
	r.normalizer = normalize.New(r, normalize.WithLogger(r.logger))
	return r
}

// Declare registers a template for attribute on recordType. Options must hold
// exactly one of starting_value or label. Redeclaring an attribute replaces
// the previous spec unless the registry is strict.
func (r *Registry) Declare(recordType, attribute string, opts attr.Options) error {
	recordType = record.TypeName(recordType)
	if recordType == "" {
		return &attr.ConfigurationError{Attribute: attribute, Reason: "record type is required"}
	}

	spec, err := attr.SpecFromOptions(attribute, opts)
	if err != nil {
		if cfgErr, ok := err.(*attr.ConfigurationError); ok {
			return cfgErr.WithRecordType(recordType)
		}
		return err
	}

	r.mu.Lock()
	attrs := r.specs[recordType]
	if attrs == nil {
		attrs = make(map[string]entry)
		r.specs[recordType] = attrs
	}
	previous, exists := attrs[spec.Attribute]
	if exists && r.strict {
		r.mu.Unlock()
		return &attr.ConfigurationError{
			RecordType: recordType,
			Attribute:  spec.Attribute,
			Reason:     fmt.Sprintf("already declared as %s %q", previous.spec.Kind, previous.spec.Value),
		}
	}
	order := r.seq
	if exists {
		order = previous.order
	} else {
		r.seq++
	}
	attrs[spec.Attribute] = entry{spec: spec, order: order}
	r.mu.Unlock()

	if exists {
		r.logger.Warn().
			Str("record_type", recordType).
			Str("attribute", spec.Attribute).
			Str("previous_kind", previous.spec.Kind.String()).
			Str("kind", spec.Kind.String()).
			Msg("templated attribute redeclared; last declaration wins")
	}

	if r.lifecycle.Install(recordType, normalize.HookName, r.normalizer.Hook()) {
		r.logger.Debug().
			Str("record_type", recordType).
			Str("hook", normalize.HookName).
			Msg("installed before_validation hook")
	}
	return nil
}

// MustDeclare panics when Declare fails. Intended for definition-time wiring.
func (r *Registry) MustDeclare(recordType, attribute string, opts attr.Options) {
	if err := r.Declare(recordType, attribute, opts); err != nil {
		panic(err)
	}
}

// SpecFor returns the spec declared for attribute on recordType.
func (r *Registry) SpecFor(recordType, attribute string) (attr.Spec, bool) {
	if r == nil {
		return attr.Spec{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.specs[record.TypeName(recordType)][attribute]
	if !ok {
		return attr.Spec{}, false
	}
	return e.spec, true
}

// Specs lists the specs declared for recordType in declaration order.
func (r *Registry) Specs(recordType string) []attr.Spec {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	attrs := r.specs[record.TypeName(recordType)]
	entries := make([]entry, 0, len(attrs))
	for _, e := range attrs {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})
	out := make([]attr.Spec, len(entries))
	for idx, e := range entries {
		out[idx] = e.spec
	}
	return out
}

// RecordTypes returns the sorted record types with at least one template.
func (r *Registry) RecordTypes() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.specs))
	for name, attrs := range r.specs {
		if len(attrs) == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templated reports whether recordType declares any template.
func (r *Registry) Templated(recordType string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.specs[record.TypeName(recordType)]) > 0
}

// Lifecycle exposes the lifecycle hooks are installed on.
func (r *Registry) Lifecycle() *record.Lifecycle {
	return r.lifecycle
}

// Normalizer returns the normalizer bound to this registry.
func (r *Registry) Normalizer() *normalize.Normalizer {
	return r.normalizer
}
