package vanilla

import (
	"regexp"

	"github.com/goliatone/go-templated/pkg/controller"
)

const (
	// DefaultTemplatedColor dims fields showing their template.
	DefaultTemplatedColor = "#999"
	// ThemeTokenColor is the go-theme token overriding the colour.
	ThemeTokenColor = "templated-color"
)

var cssColorPattern = regexp.MustCompile(`^[#a-zA-Z0-9(),.%\s-]+$`)

// Style describes how fields showing their template are styled.
type Style struct {
	Class   string
	Color   string
	Theme   string
	Variant string
}

func resolveStyle(cfg config) (Style, error) {
	style := Style{Class: controller.CSSClass, Color: DefaultTemplatedColor}
	if cfg.color != "" && cssColorPattern.MatchString(cfg.color) {
		style.Color = cfg.color
	}
	if cfg.selector == nil {
		return style, nil
	}

	selection, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
	if err != nil {
		return Style{}, err
	}
	if selection == nil {
		return style, nil
	}
	style.Theme = selection.Theme
	style.Variant = selection.Variant

	if color := selection.Tokens()[ThemeTokenColor]; color != "" && cssColorPattern.MatchString(color) {
		style.Color = color
	}
	return style, nil
}
