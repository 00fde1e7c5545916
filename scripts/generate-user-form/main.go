package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-templated/internal/server"
	"github.com/goliatone/go-templated/pkg/orchestrator"
	"github.com/goliatone/go-templated/pkg/render"
)

// Writes the demo user form fields to a standalone HTML snippet, handy when
// eyeballing the vanilla templates after edits.
func main() {
	output := flag.String("output", filepath.Join("pkg", "renderers", "vanilla", "testdata", "user_form.html"), "output file")
	withScript := flag.Bool("script", true, "include behaviour binding scripts")
	flag.Parse()

	if err := run(*output, *withScript); err != nil {
		fmt.Fprintf(os.Stderr, "generate-user-form: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("User form written to %s\n", *output)
}

func run(output string, withScript bool) error {
	ctx := context.Background()
	gen, err := orchestrator.New(ctx, orchestrator.WithEmitScript(withScript))
	if err != nil {
		return err
	}
	if err := server.DeclareUserTemplates(gen.Registry()); err != nil {
		return err
	}

	form := server.UserForm()
	rec := form.NewRecord()

	var builder strings.Builder
	builder.WriteString(gen.Head())
	builder.WriteString("\n")
	for _, field := range form.Fields {
		markup, err := gen.Render(ctx, render.Request{
			Control:   field.Control,
			Attribute: field.Attribute,
			Record:    rec,
			Options:   render.FieldOptions{Rows: field.Rows, Cols: field.Cols},
		})
		if err != nil {
			return fmt.Errorf("render %s: %w", field.Attribute, err)
		}
		builder.WriteString(markup)
		builder.WriteString("\n")
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	return os.WriteFile(output, []byte(builder.String()), 0o644)
}
