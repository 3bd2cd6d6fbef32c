// Package config holds the settings of the flowres command.  Values come
// from defaults, then an optional YAML file, then FLOWRES_* environment
// variables (with .env files loaded first), then command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/panyam/flowres/logger"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "FLOWRES_"

type Config struct {
	LogLevel    string `yaml:"log_level"`
	MaxErrors   int    `yaml:"max_errors"`
	GraphFormat string `yaml:"graph_format"`
	Color       bool   `yaml:"color"`
	Metrics     bool   `yaml:"metrics"`
	MaxDepth    int    `yaml:"max_import_depth"`

	// Root confines tree files and their imports to one directory.  Empty
	// means paths are taken as given.
	Root string `yaml:"root"`
}

func Default() *Config {
	return &Config{
		LogLevel:    "warn",
		GraphFormat: "dot",
		Color:       true,
		MaxDepth:    10,
	}
}

// Load builds a config from the defaults, the file at path (skipped when
// empty) and the environment.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadEnvFiles loads .env style files into the process environment.
// Variables that are already set win and missing files are skipped.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading env file %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("decoding config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FLOWRES_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("GRAPH_FORMAT"); ok {
		c.GraphFormat = v
	}
	if v, ok := get("ROOT"); ok {
		c.Root = v
	}
	for name, dst := range map[string]*int{"MAX_ERRORS": &c.MaxErrors, "MAX_IMPORT_DEPTH": &c.MaxDepth} {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}
	for name, dst := range map[string]*bool{"COLOR": &c.Color, "METRICS": &c.Metrics} {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = b
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.GraphFormat) {
	case "dot", "graphviz", "mermaid":
	default:
		return fmt.Errorf("unknown graph format %q", c.GraphFormat)
	}
	if c.MaxErrors < 0 || c.MaxDepth < 0 {
		return fmt.Errorf("max_errors and max_import_depth must not be negative")
	}
	return nil
}

func (c *Config) Level() (logger.LogLevel, error) {
	return logger.ParseLogLevel(c.LogLevel)
}

// Apply sets the global logger level and colouring.  Colour is only ever
// turned off here; color already disables it when output is not a terminal.
func (c *Config) Apply() error {
	level, err := c.Level()
	if err != nil {
		return err
	}
	logger.SetLogLevel(level)
	if !c.Color {
		logger.SetColor(false)
		color.NoColor = true
	}
	return nil
}
