package store

import (
	"context"
	"fmt"
	"time"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// GetPriceBySKU returns the current list price of a SKU
func (s *Store) GetPriceBySKU(ctx context.Context, sku string) (*domain.PriceListEntry, error) {
	var (
		entry     domain.PriceListEntry
		updatedAt int64
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT sku, description, price, updated_at FROM price_list WHERE sku = ?`, sku,
	).Scan(&entry.SKU, &entry.Description, &entry.Price, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrProductNotFound, sku)
	}
	entry.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &entry, nil
}

// ApplyPriceChange appends the history row and sets the new price in one transaction.
// The history row copies the stored price as its old price; the INSERT is the first
// statement so the read happens under the write lock.
func (s *Store) ApplyPriceChange(ctx context.Context, entry domain.PriceHistoryEntry) (*domain.PriceHistoryEntry, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %v", domain.ErrStoreFailure, err)
	}
	defer tx.Rollback()

	changedAt := unixMilli(entry.ChangedAt)
	err = tx.QueryRowContext(ctx,
		`INSERT INTO price_history (id, sku, old_price, new_price, changed_by, changed_at)
		SELECT ?, sku, price, ?, ?, ? FROM price_list WHERE sku = ?
		RETURNING old_price`,
		entry.ID, entry.NewPrice, entry.ChangedBy, changedAt, entry.SKU,
	).Scan(&entry.OldPrice)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrProductNotFound, entry.SKU)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE price_list SET price = ?, updated_at = ? WHERE sku = ?`,
		entry.NewPrice, changedAt, entry.SKU)
	if err != nil {
		return nil, fmt.Errorf("%w: update price %s: %v", domain.ErrStoreFailure, entry.SKU, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", domain.ErrStoreFailure, err)
	}
	entry.ChangedAt = time.UnixMilli(changedAt).UTC()
	return &entry, nil
}

// ListPriceHistory returns the recorded changes of a SKU, newest first
func (s *Store) ListPriceHistory(ctx context.Context, sku string, limit int) ([]domain.PriceHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, sku, old_price, new_price, changed_by, changed_at
		FROM price_history WHERE sku = ? ORDER BY changed_at DESC, id LIMIT ?`, sku, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list price history: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()

	history := []domain.PriceHistoryEntry{}
	for rows.Next() {
		var h domain.PriceHistoryEntry
		var changedAt int64
		if err := rows.Scan(&h.ID, &h.SKU, &h.OldPrice, &h.NewPrice, &h.ChangedBy, &changedAt); err != nil {
			return nil, fmt.Errorf("%w: scan price history: %v", domain.ErrStoreFailure, err)
		}
		h.ChangedAt = time.UnixMilli(changedAt).UTC()
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return history, nil
}
