package yaml

import (
	"fmt"

	"bennypowers.dev/dtexport/internal/parser/common"
	"bennypowers.dev/dtexport/internal/variables"
	"gopkg.in/yaml.v3"
)

// Parser reads YAML variable snapshots
type Parser struct{}

// NewParser creates a new YAML snapshot parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses snapshot data; filePath is only used in error messages
func (p *Parser) Parse(data []byte, filePath string) (*variables.Snapshot, error) {
	var raw common.RawSnapshot
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, variables.NewInvalidSnapshotError(filePath, fmt.Sprintf("failed to parse YAML: %v", err))
	}
	return common.Build(&raw, filePath)
}
