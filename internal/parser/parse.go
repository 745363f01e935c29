// Package parser loads variable snapshots from JSON, JSONC or YAML files.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/dtexport/internal/parser/json"
	"bennypowers.dev/dtexport/internal/parser/yaml"
	"bennypowers.dev/dtexport/internal/variables"
)

// Format names a snapshot encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", variables.ErrUnsupportedFormat, path)
	}
}

// Parse decodes snapshot data in the given format
func Parse(data []byte, format Format, filePath string) (*variables.Snapshot, error) {
	switch format {
	case FormatJSON:
		return json.NewParser().Parse(data, filePath)
	case FormatYAML:
		return yaml.NewParser().Parse(data, filePath)
	default:
		return nil, fmt.Errorf("%w: %q", variables.ErrUnsupportedFormat, format)
	}
}

// ParseFile reads and decodes the snapshot at path
func ParseFile(path string) (*variables.Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-selected snapshot file
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Parse(data, format, path)
}
