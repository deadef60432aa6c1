package arcgis

import (
	"context"
	"fmt"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/logger"
	"github.com/custodia-labs/crc-harvest/internal/retry"
)

// Ensure Fetcher implements the interface.
var _ driven.SourceFetcher = (*Fetcher)(nil)

// Fetcher pages through a collection's layer until it is exhausted.
type Fetcher struct {
	client *Client
	policy retry.Policy
}

// NewFetcher creates a fetcher that retries each page under policy.
func NewFetcher(client *Client, policy retry.Policy) *Fetcher {
	return &Fetcher{client: client, policy: policy}
}

// FetchAll returns every feature of the collection in upstream order.
func (f *Fetcher) FetchAll(ctx context.Context, collection domain.Collection, pageSize int) ([]domain.RawRecord, error) {
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, &domain.StageError{
			Stage:      domain.StageFetch,
			Collection: collection.Type,
			Source:     "arcgis",
			Err:        fmt.Errorf("%w: page size %d outside 1..%d", domain.ErrInvalidInput, pageSize, MaxPageSize),
		}
	}

	var all []domain.RawRecord
	for offset := 0; ; offset += pageSize {
		page, err := f.fetchPage(ctx, collection, offset, pageSize)
		if err != nil {
			return nil, &domain.StageError{
				Stage:      domain.StageFetch,
				Collection: collection.Type,
				Source:     "arcgis",
				Err:        fmt.Errorf("page at offset %d: %w", offset, err),
			}
		}
		if len(page) == 0 {
			break
		}
		logger.Debug("arcgis: %s layer %d offset %d returned %d features",
			collection.Type, collection.Layer, offset, len(page))
		all = append(all, page...)
	}

	logger.Info("arcgis: fetched %d %s records", len(all), collection.Type)
	return all, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, collection domain.Collection, offset, pageSize int) ([]domain.RawRecord, error) {
	var page []domain.RawRecord
	name := fmt.Sprintf("arcgis %s offset %d", collection.Type, offset)
	err := f.policy.Do(ctx, name, func() error {
		records, err := f.client.QueryPage(ctx, collection, offset, pageSize)
		if err != nil {
			if !IsRetryable(err) {
				return retry.Permanent(err)
			}
			return err
		}
		page = records
		return nil
	})
	return page, err
}
