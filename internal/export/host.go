package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"bennypowers.dev/dtexport/internal/log"
)

// Summary reports what an export produced
type Summary struct {
	Tokens     int           `json:"tokens"`
	Resolved   int           `json:"resolved"`
	Unresolved int           `json:"unresolved"`
	Circular   int           `json:"circular"`
	Skipped    int           `json:"skipped"`
	Duration   time.Duration `json:"duration"`
}

// Host receives the outcome of an export. Emit is called at most once per run
// and never after a failure.
type Host interface {
	Emit(doc *Document) error
	Complete(summary Summary)
	Fail(message string)
}

// ReportedError wraps an export failure that was already passed to Host.Fail
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Reported reports whether err was already delivered to a Host
func Reported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// WriterHost writes emitted documents as JSON to W and reports through the log
type WriterHost struct {
	W io.Writer
	// Indent is used for each nesting level; empty writes compact JSON
	Indent string
	Lang   string
}

// Emit encodes doc to the writer
func (h *WriterHost) Emit(doc *Document) error {
	enc := json.NewEncoder(h.W)
	enc.SetEscapeHTML(false)
	if h.Indent != "" {
		enc.SetIndent("", h.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Complete logs the localized completion message
func (h *WriterHost) Complete(summary Summary) {
	log.Info("%s in %s", Message(h.Lang, MsgExportComplete, summary.Tokens, summary.Unresolved), summary.Duration)
}

// Fail logs the localized failure message
func (h *WriterHost) Fail(message string) {
	log.Error("%s", message)
}
