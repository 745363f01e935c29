package export

import (
	"time"

	"bennypowers.dev/dtexport/internal/tokens"
)

const (
	// DocumentVersion is the format version written to every document
	DocumentVersion = "1.0.0"
	// Generator identifies this tool in document metadata
	Generator = "Design Tokens Exporter"

	isoMillis = "2006-01-02T15:04:05.000Z"
)

// Metadata describes when and by what a document was produced
type Metadata struct {
	ExportedAt string `json:"exportedAt"`
	Timestamp  int64  `json:"timestamp"`
	Version    string `json:"version"`
	Generator  string `json:"generator"`
}

// NewMetadata stamps metadata for an export finished at t
func NewMetadata(t time.Time) Metadata {
	return Metadata{
		ExportedAt: t.UTC().Format(isoMillis),
		Timestamp:  t.UnixMilli(),
		Version:    DocumentVersion,
		Generator:  Generator,
	}
}

// Document is the exported JSON payload
type Document struct {
	Metadata Metadata      `json:"metadata"`
	Tokens   []tokens.Node `json:"tokens"`
}
