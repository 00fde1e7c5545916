package orchestrator

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-templated/pkg/declare"
	"github.com/goliatone/go-templated/pkg/openapi"
	"github.com/goliatone/go-templated/pkg/record"
	"github.com/goliatone/go-templated/pkg/registry"
	"github.com/goliatone/go-templated/pkg/render"
	"github.com/goliatone/go-templated/pkg/renderers/tui"
	"github.com/goliatone/go-templated/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a template registry. Its lifecycle drives Save.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = reg
	}
}

// WithLogger routes logs from every wired component to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithStrictRedeclare makes redeclaring an attribute a configuration error.
// Ignored when WithRegistry supplies the registry.
func WithStrictRedeclare() Option {
	return func(o *Orchestrator) {
		o.strict = true
	}
}

// WithDeclarationsFS loads YAML/JSON declaration files from fsys.
func WithDeclarationsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.declarationsFS = fsys
	}
}

// WithOpenAPIDocument imports x-templated declarations from an OpenAPI
// document. source names it in errors.
func WithOpenAPIDocument(data []byte, source string) Option {
	return func(o *Orchestrator) {
		o.openapiDocs = append(o.openapiDocs, openapiDoc{data: data, source: source})
	}
}

// WithRenderer registers an additional field renderer.
func WithRenderer(renderer render.FieldRenderer) Option {
	return func(o *Orchestrator) {
		o.extraRenderers = append(o.extraRenderers, renderer)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithVanillaOptions forwards options to the built-in vanilla renderer.
func WithVanillaOptions(options ...vanilla.Option) Option {
	return func(o *Orchestrator) {
		o.vanillaOptions = append(o.vanillaOptions, options...)
	}
}

// WithThemeSelector resolves the templated styling through go-theme.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return WithVanillaOptions(vanilla.WithThemeSelector(selector, name, variant))
}

// WithEmitScript sets whether templated fields carry their binding script
// when a request does not decide.
func WithEmitScript(emit bool) Option {
	return func(o *Orchestrator) {
		o.emitScript = emit
	}
}

// WithStore overrides the in-memory store used by Save.
func WithStore(store record.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithValidators appends validators run by Save after normalization.
func WithValidators(validators ...record.Validator) Option {
	return func(o *Orchestrator) {
		o.validators = append(o.validators, validators...)
	}
}

type openapiDoc struct {
	data   []byte
	source string
}

// Orchestrator coordinates declaration loading, rendering and saving. It
// applies the built-in defaults (vanilla renderer, memory store) while
// remaining open to dependency injection.
type Orchestrator struct {
	registry        *registry.Registry
	renderers       *RendererRegistry
	defaultRenderer string
	logger          zerolog.Logger
	strict          bool
	emitScript      bool

	declarationsFS fs.FS
	openapiDocs    []openapiDoc
	extraRenderers []render.FieldRenderer
	vanillaOptions []vanilla.Option

	store      record.Store
	validators []record.Validator
	saver      *record.Saver
}

// New constructs an Orchestrator, loading every configured declaration
// source.
func New(ctx context.Context, options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
		emitScript:      true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.registry == nil {
		regOpts := []registry.Option{registry.WithLogger(o.logger)}
		if o.strict {
			regOpts = append(regOpts, registry.WithStrictRedeclare())
		}
		o.registry = registry.New(regOpts...)
	}

	if err := o.loadDeclarations(ctx); err != nil {
		return nil, err
	}
	if err := o.registerRenderers(); err != nil {
		return nil, err
	}

	if o.store == nil {
		o.store = record.NewMemoryStore()
	}
	o.saver = record.NewSaver(o.registry.Lifecycle(), o.store, o.validators...)
	return o, nil
}

func (o *Orchestrator) loadDeclarations(ctx context.Context) error {
	if o.declarationsFS != nil {
		set, err := declare.LoadFS(o.declarationsFS)
		if err != nil {
			return fmt.Errorf("orchestrator: load declarations: %w", err)
		}
		if err := set.Apply(o.registry); err != nil {
			return fmt.Errorf("orchestrator: apply declarations: %w", err)
		}
		o.logger.Info().Int("count", set.Len()).Msg("loaded templated declarations")
	}

	for _, doc := range o.openapiDocs {
		set, err := openapi.Load(ctx, doc.data, openapi.WithSourceName(doc.source))
		if err != nil {
			return fmt.Errorf("orchestrator: load openapi: %w", err)
		}
		if err := set.Apply(o.registry); err != nil {
			return fmt.Errorf("orchestrator: apply openapi declarations: %w", err)
		}
		o.logger.Info().Str("source", doc.source).Int("count", set.Len()).Msg("loaded openapi declarations")
	}
	return nil
}

func (o *Orchestrator) registerRenderers() error {
	o.renderers = NewRendererRegistry()
	for _, renderer := range o.extraRenderers {
		if err := o.renderers.Register(renderer); err != nil {
			return err
		}
	}
	if o.renderers.Has(defaultRendererName) {
		return nil
	}
	renderer, err := vanilla.New(o.vanillaOptions...)
	if err != nil {
		return fmt.Errorf("orchestrator: init vanilla renderer: %w", err)
	}
	return o.renderers.Register(renderer)
}

// Registry returns the template registry.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// Renderers returns the renderer registry.
func (o *Orchestrator) Renderers() *RendererRegistry {
	return o.renderers
}

// Store returns the store Save writes to.
func (o *Orchestrator) Store() record.Store {
	return o.store
}

// Dispatcher returns a dispatcher backed by the named renderer, or the
// default renderer when name is empty.
func (o *Orchestrator) Dispatcher(name string) (*render.Dispatcher, error) {
	if name == "" {
		name = o.defaultRenderer
	}
	base, err := o.renderers.Get(name)
	if err != nil {
		return nil, err
	}
	return render.NewDispatcher(o.registry, base, render.WithDispatcherLogger(o.logger)), nil
}

// Render renders one field with the default renderer, applying the
// configured script default when the request leaves it unset.
func (o *Orchestrator) Render(ctx context.Context, req render.Request) (string, error) {
	dispatcher, err := o.Dispatcher("")
	if err != nil {
		return "", err
	}
	if req.Options.EmitBehaviorScript == nil {
		emit := o.emitScript
		req.Options.EmitBehaviorScript = &emit
	}
	return dispatcher.Render(ctx, req)
}

// Head returns the styling markup of the default renderer, if it has any.
func (o *Orchestrator) Head() string {
	renderer, err := o.renderers.Get(o.defaultRenderer)
	if err != nil {
		return ""
	}
	if header, ok := renderer.(interface{ Head() string }); ok {
		return header.Head()
	}
	return ""
}

// Save runs the before-validation hooks (including normalization),
// validators and the store for attributes of rec.
func (o *Orchestrator) Save(ctx context.Context, rec record.Record, attributes []string) (string, error) {
	return o.saver.Save(ctx, rec, attributes)
}

// Valid normalizes and validates rec without storing it.
func (o *Orchestrator) Valid(ctx context.Context, rec record.Record) error {
	return o.saver.Valid(ctx, rec)
}

// Filler returns a terminal filler for the registry's templates.
func (o *Orchestrator) Filler(options ...tui.Option) (*tui.Filler, error) {
	return tui.New(o.registry, append([]tui.Option{tui.WithLogger(o.logger)}, options...)...)
}
