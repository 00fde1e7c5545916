package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"templated"}, args...))
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := runCLI(t, "render", "--attribute", "website")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `value="http://"`) || !strings.Contains(out, "TemplatedAttribute.bind(") {
		t.Fatalf("unexpected render output: %s", out)
	}

	out, err = runCLI(t, "render", "--attribute", "bio", "--control", "text_area", "--value", "Hello", "--no-script")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, ">Hello</textarea>") || strings.Contains(out, "<script") {
		t.Fatalf("unexpected render output: %s", out)
	}
}

func TestRenderCommandRejectsControl(t *testing.T) {
	if _, err := runCLI(t, "render", "--attribute", "bio", "--control", "select"); err == nil {
		t.Fatalf("expected unsupported control error")
	}
}

func TestNormalizeCommand(t *testing.T) {
	out, err := runCLI(t, "normalize", "--set", "bio= Tell us about yourself. ", "--set", "website=http://go.dev", "--set", "favorite_books=Dune")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	var values map[string]*string
	if err := json.Unmarshal([]byte(out), &values); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if values["bio"] != nil {
		t.Fatalf("expected bio cleared, got %q", *values["bio"])
	}
	if values["website"] == nil || *values["website"] != "http://go.dev" {
		t.Fatalf("unexpected website %v", values["website"])
	}
	if values["favorite_books"] == nil || *values["favorite_books"] != "Dune" {
		t.Fatalf("unexpected favorite_books %v", values["favorite_books"])
	}
}

func TestNormalizeCommandRejectsBadAssignment(t *testing.T) {
	if _, err := runCLI(t, "normalize", "--set", "bio"); err == nil {
		t.Fatalf("expected assignment error")
	}
}

func TestDeclarationsFromConfig(t *testing.T) {
	dir := t.TempDir()
	declDir := filepath.Join(dir, "decls")
	if err := os.MkdirAll(declDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	decl := "records:\n  comment:\n    body:\n      label: Say something nice.\n"
	if err := os.WriteFile(filepath.Join(declDir, "comment.yaml"), []byte(decl), 0o644); err != nil {
		t.Fatalf("write declarations: %v", err)
	}
	cfgPath := filepath.Join(dir, "templated.toml")
	cfg := "[declarations]\npath = \"" + filepath.ToSlash(declDir) + "\"\n\n[theme]\nname = \"acme\"\ncolor = \"#123456\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", cfgPath, "render", "--type", "comment", "--attribute", "body", "--head")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Say something nice.") {
		t.Fatalf("expected declared template, got %s", out)
	}
	if !strings.Contains(out, "--templated-color: #123456;") {
		t.Fatalf("expected themed colour, got %s", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templated.toml")
	if _, err := runCLI(t, "config", "init", "--output", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	out, err := runCLI(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") {
		t.Fatalf("unexpected output %q", out)
	}
}
