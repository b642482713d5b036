// Package config loads the homeset configuration. Layering order is
// embedded defaults, then system and user config files, then HOMESET_*
// environment variables. The result is one explicit Config value passed
// into the materializer; nothing reads ambient state after startup.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/paths"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "HOMESET_"

// Config is the full homeset configuration
type Config struct {
	// SourceRoot is the dotfiles tree to materialize
	SourceRoot string `koanf:"source_root" toml:"source_root"`

	// TargetHome is the target user's home directory; it must already exist
	TargetHome string `koanf:"target_home" toml:"target_home"`

	// TargetUser owns the materialized tree
	TargetUser string `koanf:"target_user" toml:"target_user"`

	// Strategy selects how dotfiles are applied: "link" or "copy"
	Strategy string `koanf:"strategy" toml:"strategy"`

	// Provision holds the optional command-backed provisioning steps
	Provision Provision `koanf:"provision" toml:"provision"`
}

// Provision configures the provisioning step runner
type Provision struct {
	Steps []CommandStep `koanf:"steps" toml:"steps"`
}

// CommandStep is one external command run by the provisioning runner
type CommandStep struct {
	Name       string   `koanf:"name" toml:"name"`
	Command    string   `koanf:"command" toml:"command"`
	Args       []string `koanf:"args" toml:"args"`
	BestEffort bool     `koanf:"best_effort" toml:"best_effort"`
}

// Load builds the configuration from defaults, config files and environment
func Load() (*Config, error) {
	return load(paths.ConfigFileCandidates())
}

// LoadFrom builds the configuration using explicit config file paths,
// mainly for tests.
func LoadFrom(files []string) (*Config, error) {
	return load(files)
}

func load(files []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	if cfg.SourceRoot == "" {
		cfg.SourceRoot = paths.DefaultDotfilesRoot()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the parts of the config that can be checked without
// touching the filesystem.
func (c *Config) Validate() error {
	switch c.Strategy {
	case "link", "copy":
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown strategy %q (want link or copy)", c.Strategy)
	}
	return nil
}

// MarshalTOML renders the effective configuration as TOML, used by the
// genconfig command.
func (c *Config) MarshalTOML() ([]byte, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal config")
	}
	return out, nil
}
