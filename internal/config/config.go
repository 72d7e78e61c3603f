// Package config loads rowrender settings from defaults, config files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bjaus/rowrender"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: ROWRENDER_OUTPUT__PRETTY sets output.pretty.
const EnvPrefix = "ROWRENDER_"

// UserConfigFile is the config file searched for in the XDG config dirs.
const UserConfigFile = "rowrender/config.yaml"

// Config holds the settings the CLI passes to the renderer.
type Config struct {
	TemplateDir string `koanf:"template_dir"`
	EmptyText   string `koanf:"empty_text"`
	Log         Log    `koanf:"log"`
	Output      Output `koanf:"output"`
}

// Log configures logging.
type Log struct {
	Verbosity int `koanf:"verbosity"`
}

// Output configures terminal post-processing.
type Output struct {
	Pretty   bool   `koanf:"pretty"`
	Sanitize bool   `koanf:"sanitize"`
	Style    string `koanf:"style"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"template_dir":    rowrender.DefaultTemplateDir,
		"empty_text":      rowrender.EmptyText,
		"log.verbosity":   0,
		"output.pretty":   false,
		"output.sanitize": false,
		"output.style":    "auto",
	}
}

// Load merges, lowest first: defaults, the XDG user config if present, the
// file at path if non-empty, and environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if userPath, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
		if err := k.Load(file.Provider(userPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load user config from %s: %w", userPath, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s does not exist", path)
			}
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// RenderOptions converts the settings into renderer options.
func (c *Config) RenderOptions() []rowrender.Option {
	return []rowrender.Option{
		rowrender.WithTemplateDir(c.TemplateDir),
		rowrender.WithEmptyText(c.EmptyText),
	}
}
