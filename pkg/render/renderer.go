package render

import (
	"context"

	"github.com/goliatone/go-templated/pkg/attr"
)

// Control names the form control being rendered.
type Control string

const (
	ControlTextField Control = "text_field"
	ControlTextArea  Control = "text_area"
)

// Attribute is an extra HTML attribute emitted on the control.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Field is the resolved control handed to a FieldRenderer.
type Field struct {
	Control  Control     `json:"control"`
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Value    string      `json:"value"`
	Class    string      `json:"class,omitempty"`
	Rows     int         `json:"rows,omitempty"`
	Cols     int         `json:"cols,omitempty"`
	Attrs    []Attribute `json:"attrs,omitempty"`
	Template *attr.Spec  `json:"template,omitempty"`
}

// FieldRenderer renders a single text field or text area with the given
// value and name. It stands in for the host framework's form helpers.
type FieldRenderer interface {
	Name() string
	RenderField(ctx context.Context, field Field) (string, error)
}

// SpecLookup resolves declared templates.
type SpecLookup interface {
	SpecFor(recordType, attribute string) (attr.Spec, bool)
}
