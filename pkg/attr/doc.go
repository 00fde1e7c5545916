// Package attr defines the template metadata attached to record attributes.
// A Spec pairs an attribute name with a template value and a Kind: starting
// values stay in the field as an editable prefix (e.g. "http://"), labels act
// as a substitute for the field label and disappear when the field receives
// focus. Specs are built from declaration Options, which accept exactly one of
// the `starting_value` or `label` keys; anything else fails with a
// ConfigurationError at definition time.
package attr
