// Package template defines the template engine seam used to render form
// field markup, plus a pongo2-backed implementation in the gotemplate
// subpackage.
package template
