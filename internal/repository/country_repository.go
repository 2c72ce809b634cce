package repository

import (
	"context"

	"github.com/stayhub/hotel-booking-backend/internal/model"
)

type CountryRepository interface {
	GetAll(ctx context.Context) ([]model.Country, error)
	GetByID(ctx context.Context, id int) (*model.Country, error)
	Create(ctx context.Context, c *model.Country) error
	Update(ctx context.Context, c *model.Country) error
	Delete(ctx context.Context, id int) error
}

type countryRepository struct {
	db DBTX
}

func NewCountryRepository(db DBTX) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) GetAll(ctx context.Context) ([]model.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, created_at, updated_at FROM countries ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := []model.Country{}
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *countryRepository) GetByID(ctx context.Context, id int) (*model.Country, error) {
	c := &model.Country{}
	err := r.db.QueryRow(ctx, `SELECT id, name, code, created_at, updated_at FROM countries WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *countryRepository) Create(ctx context.Context, c *model.Country) error {
	query := `
		INSERT INTO countries (name, code)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return mapError(r.db.QueryRow(ctx, query, c.Name, c.Code).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *countryRepository) Update(ctx context.Context, c *model.Country) error {
	query := `
		UPDATE countries
		SET name = $1, code = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING created_at, updated_at
	`
	return mapError(r.db.QueryRow(ctx, query, c.Name, c.Code, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt))
}

func (r *countryRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
