package main

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-templated/internal/config"
	"github.com/goliatone/go-templated/pkg/renderers/vanilla"
)

// configSelector resolves the single theme described by the configuration
// file.
type configSelector struct {
	manifest *theme.Manifest
}

func newConfigSelector(cfg *config.Config) theme.ThemeSelector {
	manifest := &theme.Manifest{
		Name:    cfg.Theme.Name,
		Version: version,
		Tokens:  map[string]string{},
	}
	if cfg.Theme.Color != "" {
		manifest.Tokens[vanilla.ThemeTokenColor] = cfg.Theme.Color
	}
	return &configSelector{manifest: manifest}
}

func (s *configSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name != "" && name != s.manifest.Name {
		return nil, fmt.Errorf("theme %q not configured", name)
	}
	return &theme.Selection{
		Theme:    s.manifest.Name,
		Variant:  variant,
		Manifest: s.manifest,
	}, nil
}
