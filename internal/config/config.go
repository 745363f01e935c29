// Package config loads export configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/dtexport/internal/export"
	"bennypowers.dev/dtexport/internal/variables"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultLang is used for notifications when a config names no language
const DefaultLang = "en"

// DiscoverPattern matches config files picked up from a directory when no
// --config flag is given.
const DiscoverPattern = "design-tokens-export.{json,jsonc,yaml,yml}"

// Default returns the configuration every loaded file is layered over
func Default() export.Config {
	return export.Config{
		Brands: []export.Brand{},
		Lang:   DefaultLang,
	}
}

// OutputOptions controls how documents are written
type OutputOptions struct {
	// Indent is repeated once per nesting level; empty writes compact JSON
	Indent string
}

// DefaultOutput returns two-space indentation
func DefaultOutput() OutputOptions {
	return OutputOptions{Indent: "  "}
}

// Overrides holds command line values that replace file values when set
type Overrides struct {
	Lang    string
	Include []string
}

// Apply copies every set override onto cfg
func (o Overrides) Apply(cfg *export.Config) {
	if o.Lang != "" {
		cfg.Lang = o.Lang
	}
	if len(o.Include) > 0 {
		cfg.Include = append([]string(nil), o.Include...)
	}
}

// Load reads a JSON (comments allowed) or YAML config file. Fields missing
// from the file keep their Default values.
func Load(path string) (*export.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-selected config file
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", variables.ErrUnsupportedFormat, path)
	}

	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
	return &cfg, nil
}

// Discover returns the first config file in dir matching DiscoverPattern, or
// "" when there is none.
func Discover(dir string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), DiscoverPattern)
	if err != nil {
		return "", fmt.Errorf("failed to search %s for config: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return filepath.Join(dir, matches[0]), nil
}
