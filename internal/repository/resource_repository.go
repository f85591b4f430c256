package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// ResourceRepository manages booking deliverable metadata.
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, id string) error
	ListByBooking(ctx context.Context, bookingID string) ([]domain.Resource, error)
}

type resourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository instantiates repository.
func NewResourceRepository(pool *pgxpool.Pool) ResourceRepository {
	return &resourceRepository{pool: pool}
}

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	const query = `
        INSERT INTO resources (booking_id, resource_type, file_name, mime_type, size_bytes, storage_key)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		resource.BookingID,
		resource.Type,
		resource.FileName,
		resource.MimeType,
		resource.SizeBytes,
		resource.StorageKey,
	).Scan(&resource.ID, &resource.CreatedAt)
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resourceRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.Resource, error) {
	const query = `
        SELECT id, booking_id, resource_type, file_name, mime_type, size_bytes, storage_key, created_at
        FROM resources WHERE booking_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Resource
	for rows.Next() {
		var resource domain.Resource
		if err := rows.Scan(
			&resource.ID,
			&resource.BookingID,
			&resource.Type,
			&resource.FileName,
			&resource.MimeType,
			&resource.SizeBytes,
			&resource.StorageKey,
			&resource.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, resource)
	}
	return result, rows.Err()
}
