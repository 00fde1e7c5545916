package render

// FieldOptions describe per-field rendering overrides.
type FieldOptions struct {
	// EmitBehaviorScript controls whether the binding script is appended to
	// templated fields. Nil means emit.
	EmitBehaviorScript *bool
	// ID overrides the DOM id (default "<record_type>_<attribute>").
	ID string
	// Name overrides the form name (default "<record_type>[<attribute>]").
	Name string
	// Class is appended to the control's class list.
	Class string
	// Rows and Cols size text areas.
	Rows int
	Cols int
	// Attrs adds arbitrary HTML attributes; keys are emitted in sorted order.
	Attrs map[string]string
}

// WithoutScript returns options that suppress the binding script.
func WithoutScript() FieldOptions {
	emit := false
	return FieldOptions{EmitBehaviorScript: &emit}
}

func (o FieldOptions) emitScript() bool {
	return o.EmitBehaviorScript == nil || *o.EmitBehaviorScript
}
