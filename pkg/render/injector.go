package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/record"
)

// Injector computes display values and binding scripts for templated
// attributes. It never mutates records.
type Injector struct {
	specs SpecLookup
}

// NewInjector builds an injector over specs.
func NewInjector(specs SpecLookup) *Injector {
	return &Injector{specs: specs}
}

// ValueToDisplay returns the template value when the record's attribute is
// nil or blank, and the live value unmodified otherwise. Attributes without a
// template return the live value.
func (i *Injector) ValueToDisplay(rec record.Record, attribute string) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("render: record is required")
	}
	live, err := rec.ReadAttribute(attribute)
	if err != nil {
		return "", fmt.Errorf("render: read %s.%s: %w", record.TypeName(rec.RecordType()), attribute, err)
	}
	spec, ok := i.specs.SpecFor(rec.RecordType(), attribute)
	if !ok {
		return record.Deref(live), nil
	}
	return DisplayValue(spec, live), nil
}

// DisplayValue applies the display rule for spec to a live value.
func DisplayValue(spec attr.Spec, live *string) string {
	if live == nil || strings.TrimSpace(*live) == "" {
		return spec.Value
	}
	return *live
}

// BindingScript returns the JavaScript directive that binds the element with
// id fieldDOMID to its template once the document is ready.
func BindingScript(fieldDOMID string, spec attr.Spec) string {
	call := fmt.Sprintf("TemplatedAttribute.bind(%s, %s, %s);",
		jsString(fieldDOMID), jsString(string(spec.Kind)), jsString(spec.Value))

	var builder strings.Builder
	builder.WriteString("(function () { var bind = function () { ")
	builder.WriteString(call)
	builder.WriteString(" }; if (document.readyState === \"loading\") { document.addEventListener(\"DOMContentLoaded\", bind); } else { bind(); } })();")
	return builder.String()
}

// BindingTag wraps BindingScript in a script element.
func BindingTag(fieldDOMID string, spec attr.Spec) string {
	return "<script type=\"text/javascript\">" + BindingScript(fieldDOMID, spec) + "</script>"
}

// DOMID mirrors the host convention "<record_type>_<attribute>".
func DOMID(recordType, attribute string) string {
	return record.TypeName(recordType) + "_" + attribute
}

// FieldName mirrors the host convention "<record_type>[<attribute>]".
func FieldName(recordType, attribute string) string {
	return record.TypeName(recordType) + "[" + attribute + "]"
}

// jsString encodes value as a JavaScript string literal. json.Marshal escapes
// <, > and & so the literal cannot terminate the enclosing script element.
func jsString(value string) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(encoded)
}
