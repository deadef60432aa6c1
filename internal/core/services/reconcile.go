package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/logger"
)

// ReconciliationIndex builds the set of records already present in a
// destination collection.
//
// The set is a snapshot. Items written by another process after it is
// built are not seen; running two harvests against one collection at once
// is unsupported.
type ReconciliationIndex struct {
	reader driven.CatalogReader
}

// NewReconciliationIndex creates an index builder over a catalog reader.
func NewReconciliationIndex(reader driven.CatalogReader) *ReconciliationIndex {
	return &ReconciliationIndex{reader: reader}
}

// Build pages through every item under parentID and collects the keys of
// their database id identifiers. Items without one are skipped and counted.
func (x *ReconciliationIndex) Build(ctx context.Context, parentID string) (*domain.ReconciliationSet, error) {
	set := domain.NewReconciliationSet()
	seen := map[string]bool{}
	continuation := ""

	for pages := 0; ; pages++ {
		page, err := x.reader.ListItems(ctx, parentID, continuation)
		if err != nil {
			return nil, indexError(parentID, fmt.Errorf("page %d: %w", pages+1, err))
		}

		for _, item := range page.Items {
			key, ok := databaseID(item)
			if !ok {
				set.Skipped++
				logger.Debug("reconcile: item %s under %s has no database id", item.ID, parentID)
				continue
			}
			set.Add(key)
		}

		if page.Next == "" {
			break
		}
		if seen[page.Next] {
			return nil, indexError(parentID, fmt.Errorf("continuation %q repeated", page.Next))
		}
		seen[page.Next] = true
		continuation = page.Next
	}

	logger.Debug("reconcile: %d existing records under %s (%d items skipped)", set.Len(), parentID, set.Skipped)
	return set, nil
}

func databaseID(item driven.CatalogItem) (string, bool) {
	for _, id := range item.Identifiers {
		if id.Scheme == domain.SchemeDatabaseID && id.Key != "" {
			return id.Key, true
		}
	}
	return "", false
}

func indexError(parentID string, err error) error {
	return &domain.StageError{
		Stage:  domain.StageIndex,
		Source: "catalog " + parentID,
		Err:    err,
	}
}
