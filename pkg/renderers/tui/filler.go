package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/controller"
	"github.com/goliatone/go-templated/pkg/normalize"
	"github.com/goliatone/go-templated/pkg/record"
	"github.com/goliatone/go-templated/pkg/render"
)

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the survey-backed driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithTextArea prompts the named attributes with a multi-line editor.
func WithTextArea(attributes ...string) Option {
	return func(f *Filler) {
		for _, name := range attributes {
			f.textAreas[strings.TrimSpace(name)] = true
		}
	}
}

// WithLogger routes filler logs to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Filler) {
		f.logger = logger
	}
}

// Answer records what happened to one templated attribute.
type Answer struct {
	Attribute string
	Kind      attr.Kind
	Typed     string
	State     controller.State
	Stored    *string
}

// Filler prompts for a record's templated attributes in the terminal. Each
// prompt replays the browser controller: label templates clear on focus and
// come back on blur when nothing was typed, and the record is normalized
// afterwards so untouched templates are stored as nil.
type Filler struct {
	specs      normalize.SpecSource
	normalizer *normalize.Normalizer
	driver     PromptDriver
	textAreas  map[string]bool
	logger     zerolog.Logger
}

// New constructs a Filler for the templates in specs.
func New(specs normalize.SpecSource, options ...Option) (*Filler, error) {
	if specs == nil {
		return nil, fmt.Errorf("tui: spec source is nil")
	}
	f := &Filler{
		specs:     specs,
		textAreas: make(map[string]bool),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	f.normalizer = normalize.New(specs, normalize.WithLogger(f.logger))
	return f, nil
}

// Fill prompts for every templated attribute of rec in declaration order,
// writes the answers back and normalizes the record. Nothing is written
// unless every prompt succeeds.
func (f *Filler) Fill(ctx context.Context, rec record.Record) ([]Answer, error) {
	if f.driver == nil {
		return nil, ErrNoDriver
	}
	if rec == nil {
		return nil, fmt.Errorf("tui: record is nil")
	}

	specs := f.specs.Specs(record.TypeName(rec.RecordType()))
	answers := make([]Answer, 0, len(specs))
	values := make([]string, 0, len(specs))
	for _, spec := range specs {
		answer, value, err := f.prompt(ctx, rec, spec)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
		values = append(values, value)
	}

	for i := range answers {
		if err := rec.WriteAttribute(answers[i].Attribute, &values[i]); err != nil {
			return nil, fmt.Errorf("tui: write %s.%s: %w", rec.RecordType(), answers[i].Attribute, err)
		}
	}

	if err := f.normalizer.Normalize(ctx, rec); err != nil {
		return nil, fmt.Errorf("tui: normalize %s: %w", rec.RecordType(), err)
	}
	for i := range answers {
		stored, err := rec.ReadAttribute(answers[i].Attribute)
		if err != nil {
			return nil, fmt.Errorf("tui: read %s.%s: %w", rec.RecordType(), answers[i].Attribute, err)
		}
		answers[i].Stored = stored
	}
	return answers, nil
}

// prompt asks for one attribute and returns the value the field holds after
// blur. The record is left untouched.
func (f *Filler) prompt(ctx context.Context, rec record.Record, spec attr.Spec) (Answer, string, error) {
	live, err := rec.ReadAttribute(spec.Attribute)
	if err != nil {
		return Answer{}, "", fmt.Errorf("tui: read %s.%s: %w", rec.RecordType(), spec.Attribute, err)
	}

	field := controller.BindSpec(spec, render.DisplayValue(spec, live))
	field.Focus()

	message := attr.Humanize(spec.Attribute)
	help := promptHelp(spec)

	var typed string
	if f.textAreas[spec.Attribute] {
		typed, err = f.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: field.Value(), Help: help})
	} else {
		typed, err = f.driver.Input(ctx, InputConfig{Message: message, Default: field.Value(), Help: help})
	}
	if err != nil {
		return Answer{}, "", err
	}

	field.KeyUp(typed)
	state := field.Blur()

	f.logger.Debug().
		Str("record_type", rec.RecordType()).
		Str("attribute", spec.Attribute).
		Str("state", state.String()).
		Msg("templated attribute answered")

	if state == controller.ShowingTemplate {
		if err := f.driver.Info(ctx, fmt.Sprintf("%s left as template", message)); err != nil {
			return Answer{}, "", err
		}
	}

	return Answer{
		Attribute: spec.Attribute,
		Kind:      spec.Kind,
		Typed:     typed,
		State:     state,
	}, field.Value(), nil
}

func promptHelp(spec attr.Spec) string {
	if spec.Kind == attr.KindLabel {
		return spec.Value
	}
	return fmt.Sprintf("Starts as %q", spec.Value)
}
