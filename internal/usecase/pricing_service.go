package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/metrics"
)

// PricingService applies batches of list price changes
type PricingService struct {
	repo   domain.PriceRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewPricingService creates a pricing service
func NewPricingService(repo domain.PriceRepository, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingService{
		repo:   repo,
		logger: logger.Named("pricing"),
		now:    time.Now,
	}
}

// ApplyPriceChanges updates each SKU independently so one bad change never aborts the batch.
// Only admin callers may change prices; others are rejected before any write.
func (s *PricingService) ApplyPriceChanges(
	ctx context.Context,
	caller *domain.Caller,
	changes []domain.PriceChange,
) (*domain.PriceUpdateResult, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		s.logger.Warn("price update rejected", zap.String("user_id", caller.UserID), zap.String("role", caller.Role))
		return nil, domain.ErrForbidden
	}
	if len(changes) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	result := &domain.PriceUpdateResult{Errors: []string{}}
	for _, change := range changes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := s.applyChange(ctx, caller, change); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", change.SKU, err))
			metrics.PriceChanges.WithLabelValues(metrics.StatusFailure).Inc()
			s.logger.Warn("price change failed", zap.String("sku", change.SKU), zap.Error(err))
			continue
		}
		result.Updated++
		metrics.PriceChanges.WithLabelValues(metrics.StatusSuccess).Inc()
	}

	s.logger.Info("price batch applied",
		zap.String("user_id", caller.UserID),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))

	return result, nil
}

// applyChange validates one change, then updates the price and appends history.
// The history records the stored price as the old price.
func (s *PricingService) applyChange(ctx context.Context, caller *domain.Caller, change domain.PriceChange) error {
	sku := strings.TrimSpace(change.SKU)
	if sku == "" {
		return fmt.Errorf("%w: sku is required", domain.ErrInvalidRequest)
	}
	if change.NewPrice < 0 || math.IsNaN(change.NewPrice) || math.IsInf(change.NewPrice, 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPrice, change.NewPrice)
	}

	recorded, err := s.repo.ApplyPriceChange(ctx, domain.PriceHistoryEntry{
		ID:        uuid.NewString(),
		SKU:       sku,
		NewPrice:  change.NewPrice,
		ChangedBy: caller.UserID,
		ChangedAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	s.logger.Debug("price changed",
		zap.String("sku", recorded.SKU),
		zap.Float64("old_price", recorded.OldPrice),
		zap.Float64("new_price", recorded.NewPrice))
	return nil
}

// History returns the recorded price changes of a SKU for an admin caller
func (s *PricingService) History(ctx context.Context, caller *domain.Caller, sku string, limit int) ([]domain.PriceHistoryEntry, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.ListPriceHistory(ctx, sku, limit)
}
