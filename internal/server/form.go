package server

import (
	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/record"
	"github.com/goliatone/go-templated/pkg/registry"
	"github.com/goliatone/go-templated/pkg/render"
)

// FormField describes one control on a served form.
type FormField struct {
	Attribute string
	Label     string
	Control   render.Control
	Rows      int
	Cols      int
}

// Form lists the fields served for a record type.
type Form struct {
	RecordType string
	Title      string
	Fields     []FormField
}

// Attributes returns the attribute names of the form's fields.
func (f Form) Attributes() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Attribute)
	}
	return out
}

// NewRecord returns an empty record holding the form's attributes.
func (f Form) NewRecord() *record.Map {
	return record.NewMap(f.RecordType, f.Attributes()...)
}

// UserForm is the demo form: a templated bio label, a templated website
// starting value and an untemplated favorite_books field.
func UserForm() Form {
	return Form{
		RecordType: "user",
		Title:      "New user",
		Fields: []FormField{
			{Attribute: "bio", Label: "Bio", Control: render.ControlTextArea, Rows: 4, Cols: 40},
			{Attribute: "website", Label: "Website", Control: render.ControlTextField},
			{Attribute: "favorite_books", Label: "Favorite books", Control: render.ControlTextField},
		},
	}
}

// DeclareUserTemplates declares the demo templates unless the user record
// type already has declarations.
func DeclareUserTemplates(reg *registry.Registry) error {
	if reg.Templated("user") {
		return nil
	}
	if err := reg.Declare("user", "bio", attr.Label("Tell us about yourself.")); err != nil {
		return err
	}
	return reg.Declare("user", "website", attr.StartingValue("http://"))
}

func fieldLabel(field FormField) string {
	if field.Label != "" {
		return field.Label
	}
	return attr.Humanize(field.Attribute)
}
