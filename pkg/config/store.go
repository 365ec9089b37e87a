package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Runtime modes used for filename-suffix file selection.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
	ModeTest        = "test"
)

// Store is a read-only dotted-path resolver over configuration merged
// from a .env file and a structured YAML document. It is assembled once
// by Load and never mutated afterwards, so it may be read freely from
// any goroutine without synchronization.
type Store struct {
	values map[string]any
}

type loadOptions struct {
	dir        string
	mode       string
	envFile    string
	configFile string
}

// Option configures Load.
type Option func(*loadOptions)

// WithDir sets the directory the config files are read from.
// Defaults to the current working directory.
func WithDir(dir string) Option {
	return func(o *loadOptions) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// WithMode selects mode-suffixed file variants (".env.production",
// "config.test.yaml", ...). The variant is merged over the base file.
// Defaults to ModeDevelopment.
func WithMode(mode string) Option {
	return func(o *loadOptions) {
		if mode != "" {
			o.mode = mode
		}
	}
}

// WithEnvFile sets the base .env filename. Defaults to ".env".
func WithEnvFile(name string) Option {
	return func(o *loadOptions) {
		if name != "" {
			o.envFile = name
		}
	}
}

// WithConfigFile sets the base YAML filename. Defaults to "config.yaml".
func WithConfigFile(name string) Option {
	return func(o *loadOptions) {
		if name != "" {
			o.configFile = name
		}
	}
}

// Load assembles a Store from the configured sources. Every file is
// optional; an entirely absent configuration yields a valid empty Store.
//
// Merge order (later wins):
//  1. config.yaml
//  2. config.<mode>.yaml
//  3. .env
//  4. .env.<mode>
//
// Environment pairs shadow YAML keys at the top level only.
func Load(opts ...Option) (*Store, error) {
	o := &loadOptions{
		dir:        ".",
		mode:       ModeDevelopment,
		envFile:    ".env",
		configFile: "config.yaml",
	}
	for _, opt := range opts {
		opt(o)
	}

	values := make(map[string]any)

	for _, name := range []string{o.configFile, modeVariant(o.configFile, o.mode)} {
		doc, err := parseYAMLFile(filepath.Join(o.dir, name))
		if err != nil {
			return nil, err
		}
		for k, v := range doc {
			values[k] = v
		}
	}

	for _, name := range []string{o.envFile, modeVariant(o.envFile, o.mode)} {
		pairs, err := parseEnvFile(filepath.Join(o.dir, name))
		if err != nil {
			return nil, err
		}
		for k, v := range pairs {
			values[k] = v
		}
	}

	return &Store{values: values}, nil
}

// modeVariant inserts the mode before the extension: "config.yaml" →
// "config.production.yaml"; extensionless names get a suffix: ".env" →
// ".env.production".
func modeVariant(name, mode string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name + "." + mode
	}
	return strings.TrimSuffix(name, ext) + "." + mode + ext
}

func parseYAMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return doc, nil
}

// Get resolves a dot-separated path against the merged mapping.
// A miss at any segment returns the empty string "", never nil and
// never an error. Callers probe freely and compare against "".
func (s *Store) Get(path string) any {
	if s == nil || path == "" {
		return ""
	}

	var current any = s.values
	for segment := range strings.SplitSeq(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = node[segment]
		if !ok {
			return ""
		}
	}
	return current
}

// GetString resolves path and formats the result as a string.
// Misses return "" like Get.
func (s *Store) GetString(path string) string {
	v := s.Get(path)
	if v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", v)
}
