package repository

import (
	"context"

	"github.com/stayhub/hotel-booking-backend/internal/model"
)

type CurrencyRepository interface {
	GetAll(ctx context.Context) ([]model.Currency, error)
	GetByID(ctx context.Context, id int) (*model.Currency, error)
	Create(ctx context.Context, c *model.Currency) error
	Update(ctx context.Context, c *model.Currency) error
	Delete(ctx context.Context, id int) error
}

type currencyRepository struct {
	db DBTX
}

func NewCurrencyRepository(db DBTX) CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) GetAll(ctx context.Context) ([]model.Currency, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, symbol, created_at, updated_at FROM currencies ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	currencies := []model.Currency{}
	for rows.Next() {
		var c model.Currency
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Symbol, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func (r *currencyRepository) GetByID(ctx context.Context, id int) (*model.Currency, error) {
	c := &model.Currency{}
	err := r.db.QueryRow(ctx, `SELECT id, name, code, symbol, created_at, updated_at FROM currencies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Code, &c.Symbol, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *currencyRepository) Create(ctx context.Context, c *model.Currency) error {
	query := `
		INSERT INTO currencies (name, code, symbol)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return mapError(r.db.QueryRow(ctx, query, c.Name, c.Code, c.Symbol).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *currencyRepository) Update(ctx context.Context, c *model.Currency) error {
	query := `
		UPDATE currencies
		SET name = $1, code = $2, symbol = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING created_at, updated_at
	`
	return mapError(r.db.QueryRow(ctx, query, c.Name, c.Code, c.Symbol, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt))
}

func (r *currencyRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM currencies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
