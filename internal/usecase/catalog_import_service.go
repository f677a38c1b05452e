package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/metrics"
)

// CatalogImportService turns manufacturer catalog markup into stored product records
type CatalogImportService struct {
	repo   domain.CatalogRepository
	feed   domain.CatalogFeed
	logger *zap.Logger
}

// NewCatalogImportService creates an import service. feed may be nil when remote feeds are disabled.
func NewCatalogImportService(repo domain.CatalogRepository, feed domain.CatalogFeed, logger *zap.Logger) *CatalogImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogImportService{
		repo:   repo,
		feed:   feed,
		logger: logger.Named("catalog"),
	}
}

// Import scans, classifies and upserts every product in a markup blob.
// Flow: scan table -> build records (bad rows dropped) -> upsert by link id -> tally
func (s *CatalogImportService) Import(ctx context.Context, markup string) (*domain.ImportResult, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, s.fail(domain.ErrNoXMLContent)
	}

	table := ScanMarkupTable(markup)
	if len(table.Rows) == 0 {
		return nil, s.fail(domain.ErrNoProducts)
	}

	build := BuildProductRecords(table)
	if build.Dropped > 0 {
		metrics.CatalogRowsDropped.Add(float64(build.Dropped))
		s.logger.Warn("dropped catalog rows without name or link id",
			zap.Int("dropped", build.Dropped),
			zap.Int("rows", len(table.Rows)))
	}
	if len(build.Records) == 0 {
		return nil, s.fail(domain.ErrNoProducts)
	}

	imported, err := s.repo.UpsertProducts(ctx, build.Records)
	if err != nil {
		return nil, s.fail(err)
	}

	for category, n := range build.Tally {
		metrics.CatalogRecordsImported.WithLabelValues(string(category)).Add(float64(n))
	}
	metrics.CatalogImports.WithLabelValues(metrics.StatusSuccess).Inc()

	s.logger.Info("catalog imported",
		zap.Int("imported", imported),
		zap.Int("dropped", build.Dropped),
		zap.Int("base", build.Tally[domain.CategoryBase]),
		zap.Int("wall", build.Tally[domain.CategoryWall]),
		zap.Int("tall", build.Tally[domain.CategoryTall]),
		zap.Int("accessory", build.Tally[domain.CategoryAccessory]))

	return &domain.ImportResult{
		Success:    true,
		Imported:   imported,
		Dropped:    build.Dropped,
		Categories: build.Tally,
	}, nil
}

// ImportFromURL fetches catalog markup from a manufacturer feed and imports it
func (s *CatalogImportService) ImportFromURL(ctx context.Context, sourceURL string) (*domain.ImportResult, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return nil, s.fail(domain.ErrInvalidRequest)
	}
	if s.feed == nil {
		return nil, s.fail(fmt.Errorf("%w: remote catalog feeds are disabled", domain.ErrFeedFailure))
	}

	markup, err := s.feed.FetchMarkup(ctx, sourceURL)
	if err != nil {
		return nil, s.fail(err)
	}
	return s.Import(ctx, markup)
}

func (s *CatalogImportService) fail(err error) error {
	metrics.CatalogImports.WithLabelValues(metrics.StatusFailure).Inc()
	s.logger.Warn("catalog import failed", zap.Error(err))
	return err
}

// Product returns one stored catalog product
func (s *CatalogImportService) Product(ctx context.Context, linkID string) (*domain.ProductRecord, error) {
	if strings.TrimSpace(linkID) == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.GetProduct(ctx, linkID)
}

// Summary returns stored product counts for every category, zero-filled
func (s *CatalogImportService) Summary(ctx context.Context) (domain.CategoryTally, error) {
	stored, err := s.repo.CountProductsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	tally := make(domain.CategoryTally, len(domain.Categories))
	for _, category := range domain.Categories {
		tally[category] = stored[category]
	}
	return tally, nil
}
