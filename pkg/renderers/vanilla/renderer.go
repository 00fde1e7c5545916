package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-templated/pkg/render"
	rendertemplate "github.com/goliatone/go-templated/pkg/render/template"
	gotemplate "github.com/goliatone/go-templated/pkg/render/template/gotemplate"
)

const (
	textFieldTemplate = "templates/text_field.tmpl"
	textAreaTemplate  = "templates/text_area.tmpl"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	color            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves templated styling tokens from a go-theme
// selection. Empty name/variant defer to the selector's defaults.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithTemplatedColor sets the colour used for fields showing their template.
// A theme token, when present, takes precedence.
func WithTemplatedColor(color string) Option {
	return func(cfg *config) {
		cfg.color = strings.TrimSpace(color)
	}
}

// Renderer renders text fields and text areas from the embedded pongo2
// templates. It satisfies render.FieldRenderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	style     Style
}

var _ render.FieldRenderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	style, err := resolveStyle(cfg)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: resolve theme: %w", err)
	}

	return &Renderer{templates: renderer, style: style}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Style returns the resolved templated styling.
func (r *Renderer) Style() Style {
	return r.style
}

// RenderField renders field using the template for its control.
func (r *Renderer) RenderField(_ context.Context, field render.Field) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var name string
	switch field.Control {
	case render.ControlTextArea:
		name = textAreaTemplate
	case render.ControlTextField, "":
		name = textFieldTemplate
	default:
		return "", fmt.Errorf("vanilla renderer: unsupported control %q", field.Control)
	}

	result, err := r.templates.RenderTemplate(name, map[string]any{
		"field": fieldView(field),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s for %q: %w", field.Control, field.ID, err)
	}
	return strings.TrimSpace(result), nil
}

// Head returns the <style> block defining the templated colour and class.
func (r *Renderer) Head() string {
	var builder strings.Builder
	builder.WriteString("<style>")
	builder.WriteString(":root { --templated-color: ")
	builder.WriteString(r.style.Color)
	builder.WriteString("; }\n")
	builder.WriteString(defaultStylesheet())
	builder.WriteString("</style>")
	return builder.String()
}

func fieldView(field render.Field) map[string]any {
	attrs := make([]map[string]any, 0, len(field.Attrs))
	for _, attr := range field.Attrs {
		key := sanitizeAttrName(attr.Key)
		if key == "" {
			continue
		}
		attrs = append(attrs, map[string]any{"key": key, "value": attr.Value})
	}
	return map[string]any{
		"id":    field.ID,
		"name":  field.Name,
		"value": field.Value,
		"class": field.Class,
		"rows":  positive(field.Rows),
		"cols":  positive(field.Cols),
		"attrs": attrs,
	}
}

func positive(value int) string {
	if value <= 0 {
		return ""
	}
	return strconv.Itoa(value)
}

// sanitizeAttrName keeps attribute names to the characters HTML allows
// unquoted; anything else is dropped.
func sanitizeAttrName(name string) string {
	name = strings.TrimSpace(name)
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == ':':
		default:
			return ""
		}
	}
	return name
}
