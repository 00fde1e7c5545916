package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix prefixes environment overrides, e.g. TEMPLATED_SERVER_ADDR.
const EnvPrefix = "TEMPLATED_"

// Config represents the application configuration
type Config struct {
	Server struct {
		Addr string `koanf:"addr"`
	} `koanf:"server"`

	Declarations struct {
		Path    string `koanf:"path"`
		OpenAPI string `koanf:"openapi"`
	} `koanf:"declarations"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	Theme struct {
		Name    string `koanf:"name"`
		Variant string `koanf:"variant"`
		Color   string `koanf:"color"`
	} `koanf:"theme"`

	Render struct {
		EmitScript bool `koanf:"emit_script"`
	} `koanf:"render"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":        ":8080",
		"declarations.path":  "",
		"log.level":          "info",
		"theme.name":         "",
		"theme.variant":      "",
		"theme.color":        "",
		"render.emit_script": true,
	}
}

// LoadConfig loads the configuration from defaults, a TOML file and the
// environment, in that order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./templated.toml", "$HOME/.templated.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// envKey maps TEMPLATED_RENDER_EMIT_SCRIPT to render.emit_script. Keys are
// two levels deep so only the first separator becomes a dot.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# templated configuration

[server]
addr = ":8080"

[declarations]
# Directory of YAML/JSON declaration files.
path = "./declarations"
# Optional OpenAPI document carrying x-templated extensions.
openapi = ""

[log]
level = "info"

[theme]
name = ""
variant = ""
color = "#999"

[render]
emit_script = true
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration is nil")
	}
	if strings.TrimSpace(config.Server.Addr) == "" {
		return fmt.Errorf("server addr is required")
	}
	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.Log.Level, err)
	}
	return nil
}

// LogLevel returns the configured zerolog level, defaulting to info.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
