// Package config loads golite.yaml, the optional settings file of the
// command-line tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the working directory.
const FileName = "golite.yaml"

type Config struct {
	// Runtime is a file replacing the embedded runtime header. A relative
	// path is relative to the directory of the settings file.
	Runtime string `yaml:"runtime,omitempty"`
	// TraceScopes prints every scope of the symbol table to stderr.
	TraceScopes bool `yaml:"trace_scopes"`
	// Node is the JavaScript interpreter used by the run and eval commands.
	Node string `yaml:"node"`

	// Dir is the directory of the file the settings were read from.
	Dir string `yaml:"-"`
}

func Default() *Config {
	return &Config{Node: "node"}
}

// Load parses the settings file at path. Unknown keys are errors; missing
// keys keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Dir = filepath.Dir(abs)
	return cfg, nil
}

// Decode reads settings from r. An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.Runtime = strings.TrimSpace(cfg.Runtime)
	cfg.Node = strings.TrimSpace(cfg.Node)
	if cfg.Node == "" {
		cfg.Node = Default().Node
	}
	return cfg, nil
}

// Find loads FileName from dir, or returns the defaults when there is none.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Header returns the contents of the replacement runtime, or "" when the
// embedded runtime should be used.
func (c *Config) Header() (string, error) {
	if c.Runtime == "" {
		return "", nil
	}
	path := c.Runtime
	if !filepath.IsAbs(path) && c.Dir != "" {
		path = filepath.Join(c.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("config: read runtime: %w", err)
	}
	return string(data), nil
}

// Encode writes the settings in the format Load reads.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
