// Package config loads qzx settings.
//
// Precedence, lowest to highest: built-in defaults, the YAML config file,
// then QZX_* environment variables. Environment keys split on the first
// underscore after the prefix:
//
//	QZX_RENDER_STACK        -> render.stack
//	QZX_RENDER_GADGETS_ONLY -> render.gadgets_only
//	QZX_VIEWER_SAVE_PATH    -> viewer.save_path
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"qtermzx/builder"
	"qtermzx/errors"
	"qtermzx/internal/logger"
)

const (
	EnvPrefix         = "QZX_"
	maxConfigFileSize = 1 << 20
)

var ErrInvalidConfig = errors.New("invalid config")

var defaults = []byte(`
render:
  expand: false
  gadgets_only: false
  stack: true
logging:
  level: info
  format: console
  file: ""
viewer:
  qubits: 4
  save_path: circuit.qzx
`)

type Viewer struct {
	// Qubits is the register size of a new, empty circuit.
	Qubits   int    `koanf:"qubits"`
	SavePath string `koanf:"save_path"`
}

type Config struct {
	Render  builder.Options `koanf:"render"`
	Logging logger.Config   `koanf:"logging"`
	Viewer  Viewer          `koanf:"viewer"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := load(nil, false)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the YAML file at path over the defaults and applies the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	var content []byte
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config file %s", path)
		}
		if info.Size() > maxConfigFileSize {
			return Config{}, errors.Wrapf(ErrInvalidConfig, "config file %s is larger than %d bytes", path, maxConfigFileSize)
		}
		if content, err = os.ReadFile(path); err != nil {
			return Config{}, errors.Wrapf(err, "config file %s", path)
		}
	}
	return load(content, true)
}

// Parse is Load for config text already in memory.
func Parse(content []byte) (Config, error) {
	return load(content, true)
}

// envKey maps QZX_SECTION_FIELD_NAME to section.field_name.
func envKey(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	section, field, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + field
}

func load(content []byte, withEnv bool) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return Config{}, errors.Wrap(err, "load defaults")
	}
	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, errors.WithHint(
				errors.Wrap(errors.Mark(err, ErrInvalidConfig), "parse config"),
				"the config file is YAML with render, logging and viewer sections")
		}
	}

	if withEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return Config{}, errors.Wrap(err, "load environment")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(errors.Mark(err, ErrInvalidConfig), "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return errors.Mark(errors.Wrap(err, "logging"), ErrInvalidConfig)
	}
	if c.Viewer.Qubits < 1 {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidConfig, "viewer.qubits is %d", c.Viewer.Qubits),
			"a circuit needs at least one qubit")
	}
	if c.Viewer.SavePath == "" {
		return errors.Wrap(ErrInvalidConfig, "viewer.save_path is empty")
	}
	return nil
}
