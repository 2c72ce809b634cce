package repository

import (
	"context"

	"github.com/stayhub/hotel-booking-backend/internal/model"
)

// PermissionRepository handles permission data access.
type PermissionRepository interface {
	GetByID(ctx context.Context, id int) (*model.Permission, error)
	GetByName(ctx context.Context, name string) (*model.Permission, error)
	List(ctx context.Context) ([]model.Permission, error)
	// CountByIDs returns how many of the given ids resolve to existing permissions.
	CountByIDs(ctx context.Context, ids []int) (int, error)
	Create(ctx context.Context, p *model.Permission) error
	Update(ctx context.Context, p *model.Permission) error
	Delete(ctx context.Context, id int) error
}

type permissionRepository struct {
	db DBTX
}

// NewPermissionRepository creates a new PermissionRepository.
func NewPermissionRepository(db DBTX) PermissionRepository {
	return &permissionRepository{db: db}
}

const permissionColumns = `id, name, description, created_at, updated_at`

func (r *permissionRepository) GetByID(ctx context.Context, id int) (*model.Permission, error) {
	p := &model.Permission{}
	err := r.db.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *permissionRepository) GetByName(ctx context.Context, name string) (*model.Permission, error) {
	p := &model.Permission{}
	err := r.db.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE name = $1`, name).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// List returns all permissions ordered by name.
func (r *permissionRepository) List(ctx context.Context) ([]model.Permission, error) {
	rows, err := r.db.Query(ctx, `SELECT `+permissionColumns+` FROM permissions ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	permissions := []model.Permission{}
	for rows.Next() {
		var p model.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

func (r *permissionRepository) CountByIDs(ctx context.Context, ids []int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM permissions WHERE id = ANY($1)`, ids).Scan(&n)
	return n, err
}

func (r *permissionRepository) Create(ctx context.Context, p *model.Permission) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO permissions (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func (r *permissionRepository) Update(ctx context.Context, p *model.Permission) error {
	err := r.db.QueryRow(ctx,
		`UPDATE permissions
		 SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3
		 RETURNING updated_at`,
		p.Name, p.Description, p.ID,
	).Scan(&p.UpdatedAt)
	return mapError(err)
}

func (r *permissionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
