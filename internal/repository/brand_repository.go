package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/atelierlabs/planner-api/internal/models"
)

type BrandRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Brand, bool, error)
	List(ctx context.Context) ([]*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) (int64, error)
	Update(ctx context.Context, brand *models.Brand) error
}

type brandRepository struct {
	db *sql.DB
}

func NewBrandRepository(db *sql.DB) BrandRepository {
	return &brandRepository{db: db}
}

const brandColumns = `id, name, COALESCE(instagram_business_id, ''), COALESCE(meta_access_token, ''), created_at, updated_at`

func (r *brandRepository) GetByID(ctx context.Context, id int64) (*models.Brand, bool, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var brand models.Brand
	err := row.Scan(&brand.ID, &brand.Name, &brand.InstagramBusinessID, &brand.MetaAccessToken, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &brand, true, nil
}

func (r *brandRepository) List(ctx context.Context) ([]*models.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		var brand models.Brand
		err := rows.Scan(&brand.ID, &brand.Name, &brand.InstagramBusinessID, &brand.MetaAccessToken, &brand.CreatedAt, &brand.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		brands = append(brands, &brand)
	}
	return brands, rows.Err()
}

func (r *brandRepository) Create(ctx context.Context, brand *models.Brand) (int64, error) {
	query := `
		INSERT INTO brands (name, instagram_business_id, meta_access_token)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, brand.Name, brand.InstagramBusinessID, brand.MetaAccessToken).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *brandRepository) Update(ctx context.Context, brand *models.Brand) error {
	query := `
		UPDATE brands
		SET name = $1,
			instagram_business_id = NULLIF($2, ''),
			meta_access_token = NULLIF($3, ''),
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, brand.Name, brand.InstagramBusinessID, brand.MetaAccessToken, time.Now(), brand.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
