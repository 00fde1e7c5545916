// Package render injects templated attribute values into form fields. The
// Dispatcher looks up the attribute's spec and either delegates straight to
// the host FieldRenderer (no spec) or renders the template value in place of
// an empty live value and appends the script that binds the client-side
// controller to the field.
package render
