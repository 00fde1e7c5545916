package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if !cfg.Render.EmitScript {
		t.Fatalf("expected emit_script to default to true")
	}
	if cfg.LogLevel() != zerolog.InfoLevel {
		t.Fatalf("unexpected log level %v", cfg.LogLevel())
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate defaults: %v", err)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templated.toml")
	contents := `
[server]
addr = ":9000"

[declarations]
path = "./decls"

[log]
level = "debug"

[theme]
name = "acme"
variant = "dark"

[render]
emit_script = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TEMPLATED_RENDER_EMIT_SCRIPT", "false")
	t.Setenv("TEMPLATED_SERVER_ADDR", ":9100")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("expected env to override addr, got %q", cfg.Server.Addr)
	}
	if cfg.Declarations.Path != "./decls" {
		t.Fatalf("unexpected declarations path %q", cfg.Declarations.Path)
	}
	if cfg.Theme.Name != "acme" || cfg.Theme.Variant != "dark" {
		t.Fatalf("unexpected theme %+v", cfg.Theme)
	}
	if cfg.Render.EmitScript {
		t.Fatalf("expected env to disable emit_script")
	}
	if cfg.LogLevel() != zerolog.DebugLevel {
		t.Fatalf("unexpected log level %v", cfg.LogLevel())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templated.toml")
	if err := InitConfig(path); err != nil {
		t.Fatalf("init config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load generated config: %v", err)
	}
	if cfg.Declarations.Path != "./declarations" {
		t.Fatalf("unexpected declarations path %q", cfg.Declarations.Path)
	}
	if err := InitConfig(path); err == nil {
		t.Fatalf("expected error when file exists")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Log.Level = "loud"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected invalid level error")
	}
	cfg.Log.Level = "warn"
	cfg.Server.Addr = " "
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing addr error")
	}
	if err := Validate(nil); err == nil {
		t.Fatalf("expected nil config error")
	}
}
