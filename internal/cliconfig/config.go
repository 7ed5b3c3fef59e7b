// Package cliconfig loads the prqlcore CLI's default settings (target
// dialect, line width, color output) through a layered koanf stack:
// defaults, then a config file, then environment variables, then flags,
// each layer overriding the last.
package cliconfig

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults, used when neither a config file, an environment variable, nor
// a flag sets the key.
const (
	DefaultDialect   = "generic"
	DefaultLineWidth = 80
	DefaultColor     = true
)

// Config is the resolved set of CLI defaults.
type Config struct {
	Dialect   string `koanf:"dialect"`
	LineWidth int    `koanf:"line_width"`
	Color     bool   `koanf:"color"`
}

var configFileUsed string

// findConfigFile returns the explicit path if given, else looks for
// prqlcore.yaml/.yml in the current directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"prqlcore.yaml", "prqlcore.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// GetConfigFileUsed returns the path of the config file loaded by the most
// recent Load call, or "" if none was found.
func GetConfigFileUsed() string {
	return configFileUsed
}

// Load resolves Config from defaults, an optional YAML file, PRQLCORE_
// -prefixed environment variables, and CLI flags, in that precedence
// order (flags win).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"dialect":    DefaultDialect,
		"line_width": DefaultLineWidth,
		"color":      DefaultColor,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("cliconfig: load defaults: %w", err)
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("cliconfig: read config file %s: %w", configFileUsed, err)
		}
	}

	if err := k.Load(env.Provider("PRQLCORE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PRQLCORE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("cliconfig: load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("cliconfig: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("cliconfig: decode config: %w", err)
	}
	return &cfg, nil
}

// ctxKey is the context key under which a *Config is stored, kept inside
// this package (not internal/cli) so that cli/commands can read the
// config without an import cycle back through the cli package.
type ctxKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the Config stored by WithConfig, or a Config
// holding the package defaults if none was set (e.g. in a unit test that
// never ran PersistentPreRunE).
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return &Config{Dialect: DefaultDialect, LineWidth: DefaultLineWidth, Color: DefaultColor}
}
