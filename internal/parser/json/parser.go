package json

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/dtexport/internal/parser/common"
	"bennypowers.dev/dtexport/internal/variables"
	"github.com/tidwall/jsonc"
)

// Parser reads JSON variable snapshots. Comments and trailing commas are allowed.
type Parser struct{}

// NewParser creates a new JSON snapshot parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses snapshot data; filePath is only used in error messages
func (p *Parser) Parse(data []byte, filePath string) (*variables.Snapshot, error) {
	var raw common.RawSnapshot
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, variables.NewInvalidSnapshotError(filePath, fmt.Sprintf("failed to parse JSON: %v", err))
	}
	return common.Build(&raw, filePath)
}
