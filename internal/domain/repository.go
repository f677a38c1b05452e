package domain

import "context"

// CatalogRepository persists classified catalog products
type CatalogRepository interface {
	// UpsertProducts inserts or replaces records keyed by link id and returns how many were written
	UpsertProducts(ctx context.Context, records []ProductRecord) (int, error)
	GetProduct(ctx context.Context, linkID string) (*ProductRecord, error)
	CountProductsByCategory(ctx context.Context) (CategoryTally, error)
}

// JobRepository reads everything needed to export a job
type JobRepository interface {
	GetJobExport(ctx context.Context, jobID string) (*JobExport, error)
}

// PriceRepository reads and updates list prices
type PriceRepository interface {
	// ApplyPriceChange updates the price and appends the history entry atomically.
	// OldPrice is taken from the stored price inside the same transaction.
	ApplyPriceChange(ctx context.Context, entry PriceHistoryEntry) (*PriceHistoryEntry, error)
	ListPriceHistory(ctx context.Context, sku string, limit int) ([]PriceHistoryEntry, error)
}

// CatalogFeed fetches catalog markup published by a manufacturer
type CatalogFeed interface {
	FetchMarkup(ctx context.Context, sourceURL string) (string, error)
}

// DocumentArchive keeps a copy of every generated assembly document
type DocumentArchive interface {
	StoreDocument(ctx context.Context, name string, document string) error
}
