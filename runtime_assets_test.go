package templated

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-templated/pkg/orchestrator"
	"github.com/goliatone/go-templated/pkg/render"
	"github.com/goliatone/go-templated/pkg/testsupport"
)

func TestRuntimeAssetsFSContainsController(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), RuntimeScriptName)
	if err != nil {
		t.Fatalf("expected runtime controller to be readable: %v", err)
	}
	if !strings.Contains(string(data), "TemplatedAttribute.bind") {
		t.Fatalf("expected controller to define TemplatedAttribute.bind")
	}
}

func TestStylesheetFSDimsTemplatedClass(t *testing.T) {
	data, err := fs.ReadFile(StylesheetFS(), "templated-attribute.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".templated_attribute") {
		t.Fatalf("expected stylesheet to style the templated class")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"templates/text_field.tmpl", "templates/text_area.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestNewFacade(t *testing.T) {
	ctx := context.Background()
	gen, err := New(ctx, orchestrator.WithEmitScript(false))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	gen.Registry().MustDeclare("user", "website", StartingValue("http://"))

	markup, err := gen.Render(ctx, render.Request{Attribute: "website", Record: testsupport.NewUser()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(markup, `value="http://"`) {
		t.Fatalf("expected starting value, got %s", markup)
	}
}
