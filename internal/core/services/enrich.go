package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/logger"
)

// EnrichmentPipeline runs enrichers over a record, each isolated from the
// others. A failing enricher never stops the next one or the record.
type EnrichmentPipeline struct {
	enrichers []driven.Enricher
}

// NewEnrichmentPipeline creates a pipeline running enrichers in order.
func NewEnrichmentPipeline(enrichers ...driven.Enricher) *EnrichmentPipeline {
	return &EnrichmentPipeline{enrichers: enrichers}
}

// Names lists the enrichers in run order.
func (p *EnrichmentPipeline) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.enrichers))
	for _, e := range p.enrichers {
		names = append(names, e.Name())
	}
	return names
}

// Enrich runs every enricher and returns one *domain.StageError per
// failure. A source with nothing for the record is not a failure.
func (p *EnrichmentPipeline) Enrich(ctx context.Context, rec *domain.Record) []error {
	if p == nil {
		return nil
	}

	var failures []error
	for _, e := range p.enrichers {
		if ctx.Err() != nil {
			return failures
		}

		err := e.Enrich(ctx, rec)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrNoEnrichmentData):
			logger.Debug("enrich: %s has no data for %s %s: %v", e.Name(), rec.Collection, rec.ID, err)
		default:
			failures = append(failures, &domain.StageError{
				Stage:      domain.StageEnrich,
				Collection: rec.Collection,
				RecordID:   rec.ID,
				Source:     e.Name(),
				Err:        err,
			})
		}
	}
	return failures
}
