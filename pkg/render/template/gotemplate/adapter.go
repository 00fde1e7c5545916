package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-templated/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	options []gotemplatepkg.Option
}

func (c *config) add(opt gotemplatepkg.Option) {
	c.options = append(c.options, opt)
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		if dir = strings.TrimSpace(dir); dir != "" {
			cfg.add(gotemplatepkg.WithBaseDir(dir))
		}
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.add(gotemplatepkg.WithFS(files))
		}
	}
}

// WithExtension overrides the template extension appended to bare names.
// Defaults to ".tpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.add(gotemplatepkg.WithExtension(ext))
		}
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) > 0 {
			cfg.add(gotemplatepkg.WithGlobalData(data))
		}
	}
}

// WithTemplateFunc registers pongo2 filters or callable globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) > 0 {
			cfg.add(gotemplatepkg.WithTemplateFunc(funcs))
		}
	}
}

// Engine adapts the go-template pongo2 engine to template.TemplateRenderer.
// It ships the trim and lowerfirst filters.
type Engine struct {
	renderer *gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Either WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	renderer, err := gotemplatepkg.NewRenderer(cfg.options...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	return &Engine{renderer: renderer}, nil
}

// Render renders name as a template file, or as inline content when name
// contains template tags.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}
	return wrap(e.renderer.Render(name, data, out...))
}

// RenderTemplate renders the named template file.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}
	return wrap(e.renderer.RenderTemplate(name, data, out...))
}

// RenderString renders inline template content.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}
	return wrap(e.renderer.RenderString(templateContent, data, out...))
}

// RegisterFilter exposes fn as a pongo2 filter. Filters are process global
// in pongo2, so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if err := e.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if err := e.renderer.RegisterFilter(name, fn); err != nil {
		return fmt.Errorf("gotemplate: %w", err)
	}
	return nil
}

// GlobalContext merges data into the values shared by every template.
func (e *Engine) GlobalContext(data any) error {
	if err := e.ready(); err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	if err := e.renderer.GlobalContext(data); err != nil {
		return fmt.Errorf("gotemplate: %w", err)
	}
	return nil
}

func (e *Engine) ready() error {
	if e == nil || e.renderer == nil {
		return errors.New("gotemplate: engine is nil")
	}
	return nil
}

func wrap(out string, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("gotemplate: %w", err)
	}
	return out, nil
}
