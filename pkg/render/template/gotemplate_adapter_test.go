package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-templated/pkg/render/template/gotemplate"
	"github.com/goliatone/go-templated/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplateEscapesValues(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("field", map[string]any{
			"field": map[string]any{"name": "user[bio]", "value": "<b>hi</b>"},
		}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "field.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_StructDataUsesJSONTags(t *testing.T) {
	engine := newEngine(t)
	type field struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	result, err := engine.RenderString("{{ field.name }}:{{ field.value }}", map[string]any{
		"field": field{Name: "user[website]", Value: "http://"},
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "user[website]:http://" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"css_class": "templated_attribute"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want || written != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q / %q", want, result, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"value": "tell us"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_DefaultFilters(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ label|lowerfirst }}|{{ value|trim }}", map[string]any{
		"label": "Tell us about yourself.",
		"value": "  http://  ",
	})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if result != "tell us about yourself.|http://" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_TemplateFuncGlobals(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithGlobalData(map[string]any{"settings": map[string]any{"css_class": "dimmed"}}),
		gotemplate.WithTemplateFunc(map[string]any{
			"kind_label": func(kind string) string { return strings.ReplaceAll(kind, "_", " ") },
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderString("{{ kind_label(kind) }}:{{ settings.css_class }}", map[string]any{"kind": "starting_value"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "starting value:dimmed" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.RenderTemplate("missing", nil)
	if err == nil || !strings.HasPrefix(err.Error(), "gotemplate: ") {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
