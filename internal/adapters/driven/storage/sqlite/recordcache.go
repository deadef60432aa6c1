package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// recordCache implements driven.RecordCache. Each collection's records are
// stored as one JSON document.
type recordCache struct {
	store *Store
}

var _ driven.RecordCache = (*recordCache)(nil)

// Get returns the cached records of a collection.
func (c *recordCache) Get(ctx context.Context, collection domain.CollectionType) (*driven.CachedRecords, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT records, stored_at FROM raw_record_cache WHERE collection = ?
	`, string(collection))

	var recordsJSON string
	var entry driven.CachedRecords
	if err := row.Scan(&recordsJSON, &entry.StoredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning cached records: %w", err)
	}

	if err := json.Unmarshal([]byte(recordsJSON), &entry.Records); err != nil {
		return nil, fmt.Errorf("unmarshaling cached records: %w", err)
	}
	return &entry, nil
}

// Put replaces the cached records of a collection.
func (c *recordCache) Put(ctx context.Context, collection domain.CollectionType, records []domain.RawRecord) error {
	if records == nil {
		records = []domain.RawRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshalling records: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO raw_record_cache (collection, records, stored_at)
		VALUES (?, ?, ?)
		ON CONFLICT(collection) DO UPDATE SET
			records = excluded.records,
			stored_at = excluded.stored_at
	`, string(collection), string(data), c.store.now().UTC())
	if err != nil {
		return fmt.Errorf("saving cached records: %w", err)
	}
	return nil
}

// Clear removes the cached records of a collection.
func (c *recordCache) Clear(ctx context.Context, collection domain.CollectionType) error {
	if _, err := c.store.db.ExecContext(ctx,
		"DELETE FROM raw_record_cache WHERE collection = ?", string(collection)); err != nil {
		return fmt.Errorf("clearing cached records: %w", err)
	}
	return nil
}
