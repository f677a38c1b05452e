package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// mockCatalogRepo keeps upserted records in memory keyed by link id
type mockCatalogRepo struct {
	mu        sync.Mutex
	products  map[string]domain.ProductRecord
	upserts   int
	upsertErr error
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{products: map[string]domain.ProductRecord{}}
}

func (m *mockCatalogRepo) UpsertProducts(ctx context.Context, records []domain.ProductRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	m.upserts++
	for _, r := range records {
		m.products[r.LinkID] = r
	}
	return len(records), nil
}

func (m *mockCatalogRepo) GetProduct(ctx context.Context, linkID string) (*domain.ProductRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.products[linkID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, linkID)
	}
	return &r, nil
}

func (m *mockCatalogRepo) CountProductsByCategory(ctx context.Context) (domain.CategoryTally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tally := domain.CategoryTally{}
	for _, r := range m.products {
		tally[r.Category]++
	}
	return tally, nil
}

// mockFeed returns canned markup for any URL
type mockFeed struct {
	markup string
	err    error
	urls   []string
}

func (m *mockFeed) FetchMarkup(ctx context.Context, sourceURL string) (string, error) {
	m.urls = append(m.urls, sourceURL)
	return m.markup, m.err
}

// mockJobRepo serves one export per job id
type mockJobRepo struct {
	exports map[string]*domain.JobExport
	err     error
}

func (m *mockJobRepo) GetJobExport(ctx context.Context, jobID string) (*domain.JobExport, error) {
	if m.err != nil {
		return nil, m.err
	}
	export, ok := m.exports[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	copied := *export
	return &copied, nil
}

// mockArchive records stored documents
type mockArchive struct {
	stored map[string]string
	err    error
}

func (m *mockArchive) StoreDocument(ctx context.Context, name string, document string) error {
	if m.err != nil {
		return m.err
	}
	if m.stored == nil {
		m.stored = map[string]string{}
	}
	m.stored[name] = document
	return nil
}

// mockPriceRepo is an in-memory price list with history
type mockPriceRepo struct {
	prices   map[string]float64
	history  []domain.PriceHistoryEntry
	applyErr error
	writes   int
}

func (m *mockPriceRepo) ApplyPriceChange(ctx context.Context, entry domain.PriceHistoryEntry) (*domain.PriceHistoryEntry, error) {
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	price, ok := m.prices[entry.SKU]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, entry.SKU)
	}
	m.writes++
	entry.OldPrice = price
	m.prices[entry.SKU] = entry.NewPrice
	m.history = append(m.history, entry)
	return &entry, nil
}

func (m *mockPriceRepo) ListPriceHistory(ctx context.Context, sku string, limit int) ([]domain.PriceHistoryEntry, error) {
	var out []domain.PriceHistoryEntry
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].SKU == sku {
			out = append(out, m.history[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
