package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stayhub/hotel-booking-backend/internal/model"
)

// RolePermissionRepository manages the role_permissions association table.
// The (role_id, permission_id) pair is protected by a unique index.
type RolePermissionRepository interface {
	Find(ctx context.Context, roleID, permissionID int) (*model.RolePermission, error)
	ListPermissionsByRole(ctx context.Context, roleID int) ([]model.Permission, error)
	ListPermissionIDsByRole(ctx context.Context, roleID int) ([]int, error)
	// ListGrants returns every role/permission pair joined with its permission.
	ListGrants(ctx context.Context) ([]model.RoleGrant, error)
	CountByPermission(ctx context.Context, permissionID int) (int, error)
	Create(ctx context.Context, roleID, permissionID int) error
	// CreateMany inserts all pairs in a single statement; either every row lands or none does.
	CreateMany(ctx context.Context, roleID int, permissionIDs []int) (int64, error)
	Delete(ctx context.Context, roleID, permissionID int) error
	DeleteByRole(ctx context.Context, roleID int) (int64, error)
}

type rolePermissionRepository struct {
	db DBTX
}

// NewRolePermissionRepository creates a new RolePermissionRepository.
func NewRolePermissionRepository(db DBTX) RolePermissionRepository {
	return &rolePermissionRepository{db: db}
}

func (r *rolePermissionRepository) Find(ctx context.Context, roleID, permissionID int) (*model.RolePermission, error) {
	rp := &model.RolePermission{}
	err := r.db.QueryRow(ctx,
		`SELECT role_id, permission_id FROM role_permissions
		 WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID,
	).Scan(&rp.RoleID, &rp.PermissionID)
	if err != nil {
		return nil, mapError(err)
	}
	return rp, nil
}

func (r *rolePermissionRepository) ListPermissionsByRole(ctx context.Context, roleID int) ([]model.Permission, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, p.description, p.created_at, p.updated_at
		 FROM permissions p
		 JOIN role_permissions rp ON p.id = rp.permission_id
		 WHERE rp.role_id = $1
		 ORDER BY p.name`, roleID,
	)
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

func (r *rolePermissionRepository) ListPermissionIDsByRole(ctx context.Context, roleID int) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT permission_id FROM role_permissions WHERE role_id = $1`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *rolePermissionRepository) ListGrants(ctx context.Context) ([]model.RoleGrant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rp.role_id, p.id, p.name, p.description, p.created_at, p.updated_at
		 FROM role_permissions rp
		 JOIN permissions p ON p.id = rp.permission_id
		 ORDER BY p.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []model.RoleGrant
	for rows.Next() {
		var g model.RoleGrant
		p := &g.Permission
		if err := rows.Scan(&g.RoleID, &p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func (r *rolePermissionRepository) CountByPermission(ctx context.Context, permissionID int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM role_permissions WHERE permission_id = $1`, permissionID).Scan(&n)
	return n, err
}

func (r *rolePermissionRepository) Create(ctx context.Context, roleID, permissionID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
		roleID, permissionID,
	)
	return mapError(err)
}

func (r *rolePermissionRepository) CreateMany(ctx context.Context, roleID int, permissionIDs []int) (int64, error) {
	if len(permissionIDs) == 0 {
		return 0, nil
	}

	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"role_permissions"},
		[]string{"role_id", "permission_id"},
		pgx.CopyFromSlice(len(permissionIDs), func(i int) ([]any, error) {
			return []any{roleID, permissionIDs[i]}, nil
		}),
	)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *rolePermissionRepository) Delete(ctx context.Context, roleID, permissionID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *rolePermissionRepository) DeleteByRole(ctx context.Context, roleID int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
