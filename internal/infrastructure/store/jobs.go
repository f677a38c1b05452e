package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// GetJobExport reads a job, its customer and its first room with layout in one query
func (s *Store) GetJobExport(ctx context.Context, jobID string) (*domain.JobExport, error) {
	var (
		export    domain.JobExport
		createdAt int64

		customerName, customerEmail, customerPhone, customerCompany sql.NullString

		roomID, roomName, roomShape        sql.NullString
		roomWidth, roomDepth, roomHeight   sql.NullFloat64
		dimensions, finish, hardware, cabs sql.NullString
	)

	err := s.DB.QueryRowContext(ctx,
		`SELECT j.id, j.job_number, j.name, j.status, j.delivery_method,
		j.cost_ex_tax, j.cost_inc_tax, j.notes, j.created_at,
		c.name, c.email, c.phone, c.company,
		r.id, r.name, r.shape, r.width, r.depth, r.height,
		r.global_dimensions, r.finish, r.hardware, r.layout
		FROM jobs j
		LEFT JOIN customers c ON c.id = j.customer_id
		LEFT JOIN rooms r ON r.id = (
			SELECT id FROM rooms WHERE job_id = j.id ORDER BY created_at, id LIMIT 1
		)
		WHERE j.id = ?`, jobID,
	).Scan(&export.Job.ID, &export.Job.JobNumber, &export.Job.Name, &export.Job.Status,
		&export.Job.DeliveryMethod, &export.Job.CostExTax, &export.Job.CostIncTax,
		&export.Job.Notes, &createdAt,
		&customerName, &customerEmail, &customerPhone, &customerCompany,
		&roomID, &roomName, &roomShape, &roomWidth, &roomDepth, &roomHeight,
		&dimensions, &finish, &hardware, &cabs)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrJobNotFound, jobID)
	}

	export.Job.CreatedAt = time.UnixMilli(createdAt).UTC()
	export.Customer = domain.Customer{
		Name:    customerName.String,
		Email:   customerEmail.String,
		Phone:   customerPhone.String,
		Company: customerCompany.String,
	}
	export.Room = domain.Room{
		ID:     roomID.String,
		Name:   roomName.String,
		Shape:  roomShape.String,
		Width:  roomWidth.Float64,
		Depth:  roomDepth.Float64,
		Height: roomHeight.Float64,
	}

	columns := []struct {
		name  string
		value sql.NullString
		dest  any
	}{
		{"global_dimensions", dimensions, &export.Room.DimensionOverrides},
		{"finish", finish, &export.Finish},
		{"hardware", hardware, &export.Hardware},
		{"layout", cabs, &export.Cabinets},
	}
	for _, col := range columns {
		if !col.value.Valid || col.value.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.value.String), col.dest); err != nil {
			return nil, fmt.Errorf("%w: decode rooms.%s for job %s: %v", domain.ErrStoreFailure, col.name, jobID, err)
		}
	}

	return &export, nil
}

// notFoundOr maps sql.ErrNoRows to notFound and anything else to a store failure
func notFoundOr(err error, notFound error, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", notFound, key)
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
}
