package services

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// --- Mock implementations for harvest testing ---

// mockFetcher returns fixed records.
type mockFetcher struct {
	records []domain.RawRecord
	err     error
	calls   int
	onFetch func()
}

func (m *mockFetcher) FetchAll(_ context.Context, _ domain.Collection, _ int) ([]domain.RawRecord, error) {
	m.calls++
	if m.onFetch != nil {
		m.onFetch()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

// mockCatalog is an in-memory catalog. Created items become visible to
// later listings, like the real catalog.
type mockCatalog struct {
	mu       sync.Mutex
	items    map[string][]driven.CatalogItem
	pageSize int
	listErr  error

	// outcomes forces a submission status per record id.
	outcomes map[string]domain.SubmissionStatus

	// storeOnUnknown lists record ids stored despite reporting an unknown outcome.
	storeOnUnknown map[string]bool

	// afterSubmit runs after every submission.
	afterSubmit func(rec *domain.Record)

	submitted []*domain.Record
	lists     int
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		items:    make(map[string][]driven.CatalogItem),
		pageSize: 2,
		outcomes: make(map[string]domain.SubmissionStatus),
	}
}

// seed stores items with the given database ids under parentID.
func (m *mockCatalog) seed(parentID string, ids ...string) {
	for _, id := range ids {
		m.items[parentID] = append(m.items[parentID], catalogItem(id))
	}
}

func catalogItem(id string) driven.CatalogItem {
	return driven.CatalogItem{
		ID: "sb-" + id,
		Identifiers: []domain.Identifier{
			{Type: domain.IdentifierTypeUniqueKey, Scheme: domain.SchemeDatabaseID, Key: id},
		},
	}
}

func (m *mockCatalog) ListItems(_ context.Context, parentID, continuation string) (*driven.ItemPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}

	start := 0
	if continuation != "" {
		n, err := strconv.Atoi(continuation)
		if err != nil {
			return nil, errors.New("bad continuation")
		}
		start = n
	}
	all := m.items[parentID]
	end := min(start+m.pageSize, len(all))

	page := &driven.ItemPage{Items: append([]driven.CatalogItem(nil), all[start:end]...)}
	if end < len(all) {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

func (m *mockCatalog) Submit(_ context.Context, parentID string, rec *domain.Record) domain.SubmissionResult {
	m.mu.Lock()
	m.submitted = append(m.submitted, rec)

	status, forced := m.outcomes[rec.ID]
	if !forced {
		status = domain.SubmissionCreated
	}

	result := domain.SubmissionResult{RecordID: rec.ID, Status: status}
	switch status {
	case domain.SubmissionCreated:
		m.items[parentID] = append(m.items[parentID], catalogItem(rec.ID))
		result.ItemID = "sb-" + rec.ID
		result.URL = "https://sb.example/item/sb-" + rec.ID
	case domain.SubmissionUnknown:
		if m.storeOnUnknown[rec.ID] {
			m.items[parentID] = append(m.items[parentID], catalogItem(rec.ID))
		}
		result.Err = domain.ErrAmbiguousOutcome
	case domain.SubmissionFailed:
		result.Err = domain.ErrSubmissionFailed
	}
	after := m.afterSubmit
	m.mu.Unlock()

	if after != nil {
		after(rec)
	}
	return result
}

// submittedIDs returns the ids of every submission, in order.
func (m *mockCatalog) submittedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.submitted))
	for _, r := range m.submitted {
		ids = append(ids, r.ID)
	}
	return ids
}

// mockEnricher records calls and optionally fails or mutates the record.
type mockEnricher struct {
	name   string
	err    error
	calls  int
	mutate func(*domain.Record)
}

func (m *mockEnricher) Name() string { return m.name }

func (m *mockEnricher) Enrich(_ context.Context, rec *domain.Record) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.mutate != nil {
		m.mutate(rec)
	}
	return nil
}

// mockRecordCache is a driven.RecordCache with injectable failures.
type mockRecordCache struct {
	entry  *driven.CachedRecords
	getErr error
	putErr error
	puts   int
}

func (m *mockRecordCache) Get(context.Context, domain.CollectionType) (*driven.CachedRecords, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.entry == nil {
		return nil, domain.ErrNotFound
	}
	return m.entry, nil
}

func (m *mockRecordCache) Put(_ context.Context, _ domain.CollectionType, records []domain.RawRecord) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	return nil
}

func (m *mockRecordCache) Clear(context.Context, domain.CollectionType) error { return nil }
