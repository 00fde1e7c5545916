package render

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-templated/pkg/controller"
	"github.com/goliatone/go-templated/pkg/record"
)

// Request describes one field to render. RecordType may be omitted when
// Record is set; Record may be nil for "new" forms without an instance.
type Request struct {
	Control    Control
	RecordType string
	Attribute  string
	Record     record.Record
	Options    FieldOptions
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger routes dispatch logs to logger.
func WithDispatcherLogger(logger zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// Dispatcher decides per field whether templating applies and renders via the
// base FieldRenderer either way.
type Dispatcher struct {
	specs  SpecLookup
	base   FieldRenderer
	logger zerolog.Logger
}

// NewDispatcher wires specs and the base renderer.
func NewDispatcher(specs SpecLookup, base FieldRenderer, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{specs: specs, base: base, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// TextField renders an <input type="text"> for attribute.
func (d *Dispatcher) TextField(ctx context.Context, recordType, attribute string, rec record.Record, opts FieldOptions) (string, error) {
	return d.Render(ctx, Request{Control: ControlTextField, RecordType: recordType, Attribute: attribute, Record: rec, Options: opts})
}

// TextArea renders a <textarea> for attribute.
func (d *Dispatcher) TextArea(ctx context.Context, recordType, attribute string, rec record.Record, opts FieldOptions) (string, error) {
	return d.Render(ctx, Request{Control: ControlTextArea, RecordType: recordType, Attribute: attribute, Record: rec, Options: opts})
}

// Render resolves req into a Field and renders it. Templated attributes get
// the display value, templated data attributes and, unless disabled, the
// binding script.
func (d *Dispatcher) Render(ctx context.Context, req Request) (string, error) {
	if d == nil || d.base == nil {
		return "", errors.New("render: base field renderer is not configured")
	}
	recordType := req.RecordType
	if recordType == "" && req.Record != nil {
		recordType = req.Record.RecordType()
	}
	recordType = record.TypeName(recordType)
	if recordType == "" || strings.TrimSpace(req.Attribute) == "" {
		return "", errors.New("render: record type and attribute are required")
	}
	if req.Control == "" {
		req.Control = ControlTextField
	}

	var live *string
	if req.Record != nil {
		value, err := req.Record.ReadAttribute(req.Attribute)
		if err != nil {
			return "", fmt.Errorf("render: read %s.%s: %w", recordType, req.Attribute, err)
		}
		live = value
	}

	field := baseField(recordType, req)

	spec, ok := d.specs.SpecFor(recordType, req.Attribute)
	if !ok {
		field.Value = record.Deref(live)
		return d.base.RenderField(ctx, field)
	}

	field.Value = DisplayValue(spec, live)
	field.Template = &spec
	field.Attrs = append(field.Attrs,
		Attribute{Key: "data-templated-kind", Value: string(spec.Kind)},
		Attribute{Key: "data-templated-value", Value: spec.Value},
	)
	if cls := controller.BindSpec(spec, field.Value).Class(); cls != "" {
		field.Class = joinClasses(field.Class, cls)
	}

	markup, err := d.base.RenderField(ctx, field)
	if err != nil {
		return "", err
	}

	if req.Options.emitScript() {
		markup += BindingTag(field.ID, spec)
	}

	d.logger.Debug().
		Str("record_type", recordType).
		Str("attribute", req.Attribute).
		Str("control", string(req.Control)).
		Bool("script", req.Options.emitScript()).
		Msg("rendered templated field")
	return markup, nil
}

func baseField(recordType string, req Request) Field {
	opts := req.Options
	field := Field{
		Control: req.Control,
		ID:      opts.ID,
		Name:    opts.Name,
		Class:   strings.TrimSpace(opts.Class),
		Rows:    opts.Rows,
		Cols:    opts.Cols,
	}
	if field.ID == "" {
		field.ID = DOMID(recordType, req.Attribute)
	}
	if field.Name == "" {
		field.Name = FieldName(recordType, req.Attribute)
	}
	if len(opts.Attrs) > 0 {
		keys := make([]string, 0, len(opts.Attrs))
		for key := range opts.Attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			field.Attrs = append(field.Attrs, Attribute{Key: key, Value: opts.Attrs[key]})
		}
	}
	return field
}

func joinClasses(existing, extra string) string {
	if existing == "" {
		return extra
	}
	return existing + " " + extra
}
