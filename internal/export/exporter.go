// Package export assembles the token document: it resolves every color
// variable of a token collection for each configured brand, arranges the
// results into a sorted group tree and hands the document to a Host.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bennypowers.dev/dtexport/internal/color"
	"bennypowers.dev/dtexport/internal/log"
	"bennypowers.dev/dtexport/internal/naming"
	"bennypowers.dev/dtexport/internal/resolver"
	"bennypowers.dev/dtexport/internal/tokens"
	"bennypowers.dev/dtexport/internal/variables"
)

// ProvenanceCircular prefixes the provenance of entries whose alias chain loops
const ProvenanceCircular = "Circular alias"

// Exporter runs exports against a variable source
type Exporter struct {
	source   variables.Source
	resolver *resolver.Resolver
	host     Host
	now      func() time.Time
}

// Option configures an Exporter
type Option func(*Exporter)

// WithClock replaces time.Now for metadata timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates an exporter reading from source and reporting to host
func New(source variables.Source, host Host, opts ...Option) *Exporter {
	e := &Exporter{
		source:   source,
		resolver: resolver.New(source),
		host:     host,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export builds the document for cfg and emits it to the host. Structural
// failures are reported to the host as a localized message and returned
// wrapped in *ReportedError; nothing is emitted in that case.
func (e *Exporter) Export(ctx context.Context, cfg Config) error {
	doc, summary, err := e.Build(ctx, cfg)
	if err != nil {
		return e.fail(cfg.Lang, err)
	}
	if err := e.host.Emit(doc); err != nil {
		return e.fail(cfg.Lang, err)
	}
	e.host.Complete(summary)
	return nil
}

func (e *Exporter) fail(lang string, err error) error {
	e.host.Fail(failureMessage(lang, err))
	return &ReportedError{Err: err}
}

func failureMessage(lang string, err error) string {
	if errors.Is(err, variables.ErrCollectionsNotFound) {
		return Message(lang, MsgCollectionsNotFound)
	}
	return Message(lang, MsgExportFailed, err)
}

// Build produces the document for cfg without notifying the host
func (e *Exporter) Build(ctx context.Context, cfg Config) (*Document, Summary, error) {
	start := e.now()
	var summary Summary

	if err := cfg.checkPatterns(); err != nil {
		return nil, summary, err
	}
	if err := e.checkCollections(ctx, cfg); err != nil {
		return nil, summary, err
	}

	vars, err := e.source.VariablesInCollection(ctx, cfg.TokenCollectionID)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to list variables of %s: %w", cfg.TokenCollectionID, err)
	}
	log.Debug("Exporting %d variables for %d brands", len(vars), len(cfg.Brands))

	var root []tokens.Node
	for _, v := range vars {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}
		if !v.IsColor() || !cfg.includes(v.Name) {
			summary.Skipped++
			continue
		}

		token, folders, err := e.buildToken(ctx, v, cfg.Brands, &summary)
		if err != nil {
			return nil, summary, err
		}
		tokens.InsertToken(&root, folders, token)
		summary.Tokens++
	}

	end := e.now()
	summary.Duration = end.Sub(start)
	return &Document{
		Metadata: NewMetadata(end),
		Tokens:   tokens.Sort(root),
	}, summary, nil
}

func (e *Exporter) checkCollections(ctx context.Context, cfg Config) error {
	var missing []string
	for _, id := range []string{cfg.TokenCollectionID, cfg.PrimitiveCollectionID} {
		c, err := e.source.CollectionByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to look up collection %s: %w", id, err)
		}
		if c == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return variables.NewCollectionsNotFoundError(cfg.TokenCollectionID, cfg.PrimitiveCollectionID, missing)
	}
	return nil
}

func (e *Exporter) buildToken(ctx context.Context, v *variables.Variable, brands []Brand, summary *Summary) (*tokens.Token, []string, error) {
	folders, leaf := naming.ParseVariablePath(v.Name)
	token := &tokens.Token{
		Name:  leaf,
		Path:  naming.DottedPath(folders, leaf),
		Modes: make(map[string]tokens.BrandModes, len(brands)),
	}

	for _, brand := range brands {
		var modes tokens.BrandModes
		var err error
		if brand.Light != nil {
			if modes.Light, err = e.resolveBinding(ctx, v, *brand.Light, resolver.Light, summary); err != nil {
				return nil, nil, err
			}
		}
		if brand.Dark != nil {
			if modes.Dark, err = e.resolveBinding(ctx, v, *brand.Dark, resolver.Dark, summary); err != nil {
				return nil, nil, err
			}
		}
		token.Modes[brand.Name] = modes
	}
	return token, folders, nil
}

// resolveBinding resolves one brand mode. A circular alias only degrades this
// entry; any other error aborts the export.
func (e *Exporter) resolveBinding(ctx context.Context, v *variables.Variable, b ModeBinding, mode resolver.BrandMode, summary *Summary) (*resolver.ColorResult, error) {
	result, err := e.resolver.ResolveColor(ctx, v, b.ModeID, b.PrimitiveModeID, mode)

	var circular *variables.CircularAliasError
	switch {
	case errors.As(err, &circular):
		log.Warn("%s (%s): %v", v.Name, mode, err)
		summary.Circular++
		result = resolver.ColorResult{
			Hex:           color.Fallback,
			PrimitiveName: ProvenanceCircular + ": " + circular.ChainString(),
			Unresolved:    true,
		}
	case err != nil:
		return nil, fmt.Errorf("failed to resolve %s (%s): %w", v.Name, mode, err)
	}

	if result.Unresolved {
		summary.Unresolved++
		log.Debug("%s (%s) unresolved: %s", v.Name, mode, result.PrimitiveName)
	} else {
		summary.Resolved++
	}
	return &result, nil
}
