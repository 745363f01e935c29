package export

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ModeBinding pairs a token collection mode with the primitive collection mode
// used when resolving aliases for it.
type ModeBinding struct {
	ModeID          string `json:"modeId" yaml:"modeId"`
	PrimitiveModeID string `json:"primitiveModeId" yaml:"primitiveModeId"`
}

// Brand names a set of light/dark bindings. Either binding may be omitted.
type Brand struct {
	Name  string       `json:"name" yaml:"name"`
	Light *ModeBinding `json:"light,omitempty" yaml:"light,omitempty"`
	Dark  *ModeBinding `json:"dark,omitempty" yaml:"dark,omitempty"`
}

// Config describes one export run
type Config struct {
	TokenCollectionID     string  `json:"tokenCollectionId" yaml:"tokenCollectionId"`
	PrimitiveCollectionID string  `json:"primitiveCollectionId" yaml:"primitiveCollectionId"`
	Brands                []Brand `json:"brands" yaml:"brands"`

	// Lang selects the language of host notifications (default "en")
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`

	// Include limits the export to variables whose names match one of these
	// doublestar globs (e.g. "Colors/**"). Empty exports every color variable.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
}

// checkPatterns rejects malformed Include globs before any lookups happen
func (c *Config) checkPatterns() error {
	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern %q", pattern)
		}
	}
	return nil
}

// includes reports whether a variable name passes the Include filter
func (c *Config) includes(name string) bool {
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
