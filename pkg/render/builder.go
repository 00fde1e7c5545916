package render

import (
	"context"

	"github.com/goliatone/go-templated/pkg/record"
)

// FormBuilder binds a dispatcher to one record, the equivalent of a host
// framework's form_for block.
type FormBuilder struct {
	dispatcher *Dispatcher
	record     record.Record
}

// For returns a FormBuilder for rec.
func (d *Dispatcher) For(rec record.Record) *FormBuilder {
	return &FormBuilder{dispatcher: d, record: rec}
}

// TextField renders a text input for attribute of the bound record.
func (b *FormBuilder) TextField(ctx context.Context, attribute string, opts FieldOptions) (string, error) {
	return b.dispatcher.TextField(ctx, "", attribute, b.record, opts)
}

// TextArea renders a text area for attribute of the bound record.
func (b *FormBuilder) TextArea(ctx context.Context, attribute string, opts FieldOptions) (string, error) {
	return b.dispatcher.TextArea(ctx, "", attribute, b.record, opts)
}
