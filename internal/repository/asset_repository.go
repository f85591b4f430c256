package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// AssetRepository encapsulates asset persistence.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.Asset, error)
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository instantiates repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	coords, err := json.Marshal(asset.Coordinates)
	if err != nil {
		return err
	}
	var center []byte
	if asset.CenterPoint != nil {
		center, err = json.Marshal(asset.CenterPoint)
		if err != nil {
			return err
		}
	}

	const query = `
        INSERT INTO assets (company_id, created_by, name, asset_type, address, postcode, area, coordinates, center_point)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		asset.CompanyID,
		asset.CreatedBy,
		asset.Name,
		asset.AssetType,
		asset.Address,
		asset.Postcode,
		asset.Area,
		coords,
		center,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
}

func (r *assetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	const query = `
        SELECT id, company_id, created_by, name, asset_type, address, postcode, area, coordinates, center_point, created_at, updated_at
        FROM assets WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	asset, err := scanAsset(rows)
	if err != nil {
		return nil, err
	}
	return asset, rows.Err()
}

func (r *assetRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.Asset, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, company_id, created_by, name, asset_type, address, postcode, area, coordinates, center_point, created_at, updated_at
        FROM assets WHERE company_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *asset)
	}
	return result, rows.Err()
}

func scanAsset(rows pgx.Rows) (*domain.Asset, error) {
	var (
		asset  domain.Asset
		coords []byte
		center []byte
	)
	if err := rows.Scan(
		&asset.ID,
		&asset.CompanyID,
		&asset.CreatedBy,
		&asset.Name,
		&asset.AssetType,
		&asset.Address,
		&asset.Postcode,
		&asset.Area,
		&coords,
		&center,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(coords) > 0 {
		if err := json.Unmarshal(coords, &asset.Coordinates); err != nil {
			return nil, err
		}
	}
	if len(center) > 0 {
		var point domain.Point
		if err := json.Unmarshal(center, &point); err != nil {
			return nil, err
		}
		asset.CenterPoint = &point
	}
	return &asset, nil
}
