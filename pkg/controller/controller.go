package controller

import (
	"strings"

	"github.com/goliatone/go-templated/pkg/attr"
)

// CSSClass is applied to fields while they show their template.
const CSSClass = "templated_attribute"

// State is the display state of a bound field.
type State int

const (
	ShowingUserData State = iota
	ShowingTemplate
)

func (s State) String() string {
	switch s {
	case ShowingTemplate:
		return "showing_template"
	default:
		return "showing_user_data"
	}
}

// Event is a DOM event the controller reacts to.
type Event string

const (
	EventKeyUp Event = "keyup"
	EventBlur  Event = "blur"
	EventFocus Event = "focus"
)

// Field is the per-field state: current content, template and display state.
type Field struct {
	value    string
	template string
	kind     attr.Kind
	state    State
}

// Bind attaches controller state to a field currently holding value. kind is
// parsed leniently: unknown kinds never clear on focus.
func Bind(kind, template, value string) *Field {
	f := &Field{
		value:    value,
		template: template,
		kind:     attr.ParseKind(kind),
	}
	f.restyle()
	return f
}

// BindSpec binds using a declared spec.
func BindSpec(spec attr.Spec, value string) *Field {
	return Bind(string(spec.Kind), spec.Value, value)
}

// Value returns the current field content.
func (f *Field) Value() string {
	return f.value
}

// State returns the current display state.
func (f *Field) State() State {
	return f.state
}

// Kind returns the bound template kind.
func (f *Field) Kind() attr.Kind {
	return f.kind
}

// Template returns the bound template value.
func (f *Field) Template() string {
	return f.template
}

// Class returns the CSS class list the field should carry.
func (f *Field) Class() string {
	if f.state == ShowingTemplate {
		return CSSClass
	}
	return ""
}

// Type replaces the content as the user would by typing; no transition runs
// until the following event.
func (f *Field) Type(value string) {
	f.value = value
}

// KeyUp sets value and re-evaluates styling from content alone.
func (f *Field) KeyUp(value string) State {
	f.value = value
	f.restyle()
	return f.state
}

// Blur restores the template into blank fields.
func (f *Field) Blur() State {
	current := strings.TrimSpace(f.value)
	if current == "" || current == f.template {
		f.value = f.template
		f.state = ShowingTemplate
	}
	return f.state
}

// Focus clears label templates. Starting values stay as editable prefixes.
func (f *Field) Focus() State {
	if f.kind != attr.KindLabel {
		return f.state
	}
	if strings.TrimSpace(f.value) == f.template {
		f.value = ""
		f.state = ShowingUserData
	}
	return f.state
}

// Handle dispatches e. Unknown events leave the field untouched.
func (f *Field) Handle(e Event) State {
	switch e {
	case EventKeyUp:
		return f.KeyUp(f.value)
	case EventBlur:
		return f.Blur()
	case EventFocus:
		return f.Focus()
	default:
		return f.state
	}
}

func (f *Field) restyle() {
	if strings.TrimSpace(f.value) == f.template {
		f.state = ShowingTemplate
		return
	}
	f.state = ShowingUserData
}
