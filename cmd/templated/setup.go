package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-templated/internal/config"
	"github.com/goliatone/go-templated/internal/server"
	"github.com/goliatone/go-templated/pkg/orchestrator"
	"github.com/goliatone/go-templated/pkg/record"
	"github.com/goliatone/go-templated/pkg/renderers/vanilla"
)

type session struct {
	cfg    *config.Config
	logger zerolog.Logger
	app    *orchestrator.Orchestrator
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// setup loads configuration and builds the orchestrator it describes.
func setup(c *cli.Context) (*session, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var logOut io.Writer = os.Stderr
	if c.App.ErrWriter != nil {
		logOut = c.App.ErrWriter
	}
	logger := newLogger(logOut, cfg.LogLevel())

	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithEmitScript(cfg.Render.EmitScript),
	}
	if path := strings.TrimSpace(cfg.Declarations.Path); path != "" {
		options = append(options, orchestrator.WithDeclarationsFS(os.DirFS(path)))
	}
	if path := strings.TrimSpace(cfg.Declarations.OpenAPI); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read openapi document: %w", err)
		}
		options = append(options, orchestrator.WithOpenAPIDocument(data, path))
	}
	if cfg.Theme.Color != "" {
		options = append(options, orchestrator.WithVanillaOptions(vanilla.WithTemplatedColor(cfg.Theme.Color)))
	}
	if cfg.Theme.Name != "" {
		options = append(options, orchestrator.WithThemeSelector(newConfigSelector(cfg), cfg.Theme.Name, cfg.Theme.Variant))
	}

	app, err := orchestrator.New(backgroundContext(c), options...)
	if err != nil {
		return nil, err
	}
	if !app.Registry().Templated("user") {
		if err := server.DeclareUserTemplates(app.Registry()); err != nil {
			return nil, err
		}
	}

	return &session{cfg: cfg, logger: logger, app: app}, nil
}

// recordFor builds a map record holding every declared attribute of
// recordType plus the names in extra.
func (r *session) recordFor(recordType string, extra ...string) *record.Map {
	seen := make(map[string]bool)
	var names []string
	for _, spec := range r.app.Registry().Specs(recordType) {
		if !seen[spec.Attribute] {
			seen[spec.Attribute] = true
			names = append(names, spec.Attribute)
		}
	}
	for _, name := range extra {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return record.NewMap(record.TypeName(recordType), names...)
}

// parseAssignments splits attr=value pairs.
func parseAssignments(raw []string) (map[string]string, []string, error) {
	values := make(map[string]string, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid assignment %q, expected attribute=value", entry)
		}
		values[name] = value
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return values, names, nil
}

func backgroundContext(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
