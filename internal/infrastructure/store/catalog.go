package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// UpsertProducts writes a batch of products in a single transaction.
// Re-importing a link id replaces the stored classification and keeps created_at.
func (s *Store) UpsertProducts(ctx context.Context, records []domain.ProductRecord) (int, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %v", domain.ErrStoreFailure, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO catalog_products (link_id, name, category, cabinet_type,
		default_width, default_depth, default_height, door_count, drawer_count,
		is_corner, is_sink, is_blind, spec_group, room_component_type, raw_metadata,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link_id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			cabinet_type = excluded.cabinet_type,
			default_width = excluded.default_width,
			default_depth = excluded.default_depth,
			default_height = excluded.default_height,
			door_count = excluded.door_count,
			drawer_count = excluded.drawer_count,
			is_corner = excluded.is_corner,
			is_sink = excluded.is_sink,
			is_blind = excluded.is_blind,
			spec_group = excluded.spec_group,
			room_component_type = excluded.room_component_type,
			raw_metadata = excluded.raw_metadata,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare: %v", domain.ErrStoreFailure, err)
	}
	defer stmt.Close()

	now := unixMilli(s.now())
	for _, r := range records {
		metadata, err := json.Marshal(r.RawMetadata)
		if err != nil {
			return 0, fmt.Errorf("%w: encode metadata for %s: %v", domain.ErrStoreFailure, r.LinkID, err)
		}
		_, err = stmt.ExecContext(ctx,
			r.LinkID, r.Name, string(r.Category), string(r.CabinetType),
			r.DefaultWidth, r.DefaultDepth, r.DefaultHeight, r.DoorCount, r.DrawerCount,
			boolInt(r.IsCorner), boolInt(r.IsSink), boolInt(r.IsBlind),
			r.SpecGroup, r.RoomComponentType, string(metadata),
			now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("%w: upsert product %s: %v", domain.ErrStoreFailure, r.LinkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", domain.ErrStoreFailure, err)
	}
	return len(records), nil
}

// GetProduct returns one stored catalog product by link id
func (s *Store) GetProduct(ctx context.Context, linkID string) (*domain.ProductRecord, error) {
	var (
		r                       domain.ProductRecord
		category, cabinetType   string
		isCorner, isSink, blind int
		metadata                string
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT link_id, name, category, cabinet_type, default_width, default_depth,
		default_height, door_count, drawer_count, is_corner, is_sink, is_blind,
		spec_group, room_component_type, raw_metadata
		FROM catalog_products WHERE link_id = ?`, linkID,
	).Scan(&r.LinkID, &r.Name, &category, &cabinetType, &r.DefaultWidth, &r.DefaultDepth,
		&r.DefaultHeight, &r.DoorCount, &r.DrawerCount, &isCorner, &isSink, &blind,
		&r.SpecGroup, &r.RoomComponentType, &metadata)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrProductNotFound, linkID)
	}

	r.Category = domain.Category(category)
	r.CabinetType = domain.CabinetType(cabinetType)
	r.IsCorner, r.IsSink, r.IsBlind = isCorner == 1, isSink == 1, blind == 1
	if err := json.Unmarshal([]byte(metadata), &r.RawMetadata); err != nil {
		return nil, fmt.Errorf("%w: decode metadata for %s: %v", domain.ErrStoreFailure, linkID, err)
	}
	return &r, nil
}

// CountProductsByCategory returns how many stored products fall in each category
func (s *Store) CountProductsByCategory(ctx context.Context) (domain.CategoryTally, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM catalog_products GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("%w: count products: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()

	tally := make(domain.CategoryTally)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("%w: scan count: %v", domain.ErrStoreFailure, err)
		}
		tally[domain.Category(category)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return tally, nil
}
