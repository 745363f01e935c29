package variables

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error type checking
var (
	// ErrCollectionsNotFound indicates an export referenced an unknown collection id
	ErrCollectionsNotFound = errors.New("collections not found")

	// ErrCircularAlias indicates an alias chain revisits a variable
	ErrCircularAlias = errors.New("circular alias")

	// ErrInvalidSnapshot indicates input data could not be turned into a Snapshot
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrUnsupportedFormat indicates an input file extension with no parser
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// CollectionsNotFoundError names the collection ids that could not be found
type CollectionsNotFoundError struct {
	TokenCollectionID     string
	PrimitiveCollectionID string
	Missing               []string
}

func (e *CollectionsNotFoundError) Error() string {
	return fmt.Sprintf("collections not found: %s (tokens: %q, primitives: %q)",
		strings.Join(e.Missing, ", "), e.TokenCollectionID, e.PrimitiveCollectionID)
}

func (e *CollectionsNotFoundError) Unwrap() error {
	return ErrCollectionsNotFound
}

// NewCollectionsNotFoundError creates a new collections not found error
func NewCollectionsNotFoundError(tokenCollectionID, primitiveCollectionID string, missing []string) error {
	return &CollectionsNotFoundError{
		TokenCollectionID:     tokenCollectionID,
		PrimitiveCollectionID: primitiveCollectionID,
		Missing:               missing,
	}
}

// CircularAliasError carries the chain of variable names that forms the cycle
type CircularAliasError struct {
	VariableID string
	Chain      []string
}

func (e *CircularAliasError) Error() string {
	return fmt.Sprintf("circular alias detected: %s", e.ChainString())
}

// ChainString renders the chain joined with arrows
func (e *CircularAliasError) ChainString() string {
	return strings.Join(e.Chain, " → ")
}

func (e *CircularAliasError) Unwrap() error {
	return ErrCircularAlias
}

// NewCircularAliasError creates a new circular alias error
func NewCircularAliasError(variableID string, chain []string) error {
	return &CircularAliasError{
		VariableID: variableID,
		Chain:      chain,
	}
}

// InvalidSnapshotError describes why a snapshot file was rejected
type InvalidSnapshotError struct {
	FilePath string
	Reason   string
}

func (e *InvalidSnapshotError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("invalid snapshot: %s", e.Reason)
	}
	return fmt.Sprintf("invalid snapshot %s: %s", e.FilePath, e.Reason)
}

func (e *InvalidSnapshotError) Unwrap() error {
	return ErrInvalidSnapshot
}

// NewInvalidSnapshotError creates a new invalid snapshot error
func NewInvalidSnapshotError(filePath, reason string) error {
	return &InvalidSnapshotError{
		FilePath: filePath,
		Reason:   reason,
	}
}
