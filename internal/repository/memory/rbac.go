package memory

import (
	"context"
	"sort"
	"time"

	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
)

type roleRepo struct{ s *Store }

func (r roleRepo) GetByID(_ context.Context, id int) (*model.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("roles.get"); err != nil {
		return nil, err
	}
	role, ok := r.s.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &role, nil
}

func (r roleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, role := range r.s.roles {
		if role.Name == name {
			role := role
			return &role, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r roleRepo) List(_ context.Context) ([]model.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("roles.list"); err != nil {
		return nil, err
	}
	roles := make([]model.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

type permissionRepo struct{ s *Store }

func (r permissionRepo) GetByID(_ context.Context, id int) (*model.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("permissions.get"); err != nil {
		return nil, err
	}
	p, ok := r.s.permissions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r permissionRepo) GetByName(_ context.Context, name string) (*model.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.permissions {
		if p.Name == name {
			p := p
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r permissionRepo) List(_ context.Context) ([]model.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("permissions.list"); err != nil {
		return nil, err
	}
	return sortedPermissions(r.s.permissions, nil), nil
}

func (r permissionRepo) CountByIDs(_ context.Context, ids []int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[int]bool, len(ids))
	n := 0
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := r.s.permissions[id]; ok {
			n++
		}
	}
	return n, nil
}

func (r permissionRepo) Create(_ context.Context, p *model.Permission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.permissions {
		if existing.Name == p.Name {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	p.ID = r.s.id()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.permissions[p.ID] = *p
	return nil
}

func (r permissionRepo) Update(_ context.Context, p *model.Permission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.permissions[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.s.permissions {
		if existing.ID != p.ID && existing.Name == p.Name {
			return repository.ErrDuplicate
		}
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.s.permissions[p.ID] = *p
	return nil
}

func (r permissionRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.permissions[id]; !ok {
		return repository.ErrNotFound
	}
	for g := range r.s.grants {
		if g.permissionID == id {
			return repository.ErrForeignKey
		}
	}
	delete(r.s.permissions, id)
	return nil
}

type rolePermissionRepo struct{ s *Store }

func (r rolePermissionRepo) Find(_ context.Context, roleID, permissionID int) (*model.RolePermission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.grants[pair{roleID, permissionID}]; !ok {
		return nil, repository.ErrNotFound
	}
	return &model.RolePermission{RoleID: roleID, PermissionID: permissionID}, nil
}

func (r rolePermissionRepo) ListPermissionsByRole(_ context.Context, roleID int) ([]model.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedPermissions(r.s.permissions, func(p model.Permission) bool {
		_, ok := r.s.grants[pair{roleID, p.ID}]
		return ok
	}), nil
}

func (r rolePermissionRepo) ListPermissionIDsByRole(_ context.Context, roleID int) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int
	for g := range r.s.grants {
		if g.roleID == roleID {
			ids = append(ids, g.permissionID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r rolePermissionRepo) ListGrants(_ context.Context) ([]model.RoleGrant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("role_permissions.list_grants"); err != nil {
		return nil, err
	}
	var grants []model.RoleGrant
	for _, p := range sortedPermissions(r.s.permissions, nil) {
		for g := range r.s.grants {
			if g.permissionID == p.ID {
				grants = append(grants, model.RoleGrant{RoleID: g.roleID, Permission: p})
			}
		}
	}
	return grants, nil
}

func (r rolePermissionRepo) CountByPermission(_ context.Context, permissionID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for g := range r.s.grants {
		if g.permissionID == permissionID {
			n++
		}
	}
	return n, nil
}

func (r rolePermissionRepo) Create(_ context.Context, roleID, permissionID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("role_permissions.create"); err != nil {
		return err
	}
	if err := r.s.checkRefs(roleID, permissionID); err != nil {
		return err
	}
	key := pair{roleID, permissionID}
	if _, ok := r.s.grants[key]; ok {
		return repository.ErrDuplicate
	}
	r.s.grants[key] = struct{}{}
	return nil
}

func (r rolePermissionRepo) CreateMany(_ context.Context, roleID int, permissionIDs []int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("role_permissions.create_many"); err != nil {
		return 0, err
	}
	batch := make(map[pair]struct{}, len(permissionIDs))
	for _, pid := range permissionIDs {
		if err := r.s.checkRefs(roleID, pid); err != nil {
			return 0, err
		}
		key := pair{roleID, pid}
		if _, ok := r.s.grants[key]; ok {
			return 0, repository.ErrDuplicate
		}
		if _, ok := batch[key]; ok {
			return 0, repository.ErrDuplicate
		}
		batch[key] = struct{}{}
	}
	for key := range batch {
		r.s.grants[key] = struct{}{}
	}
	return int64(len(batch)), nil
}

func (r rolePermissionRepo) Delete(_ context.Context, roleID, permissionID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pair{roleID, permissionID}
	if _, ok := r.s.grants[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.grants, key)
	return nil
}

func (r rolePermissionRepo) DeleteByRole(_ context.Context, roleID int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for g := range r.s.grants {
		if g.roleID == roleID {
			delete(r.s.grants, g)
			n++
		}
	}
	return n, nil
}

// checkRefs must be called with s.mu held.
func (s *Store) checkRefs(roleID, permissionID int) error {
	if _, ok := s.roles[roleID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := s.permissions[permissionID]; !ok {
		return repository.ErrForeignKey
	}
	return nil
}
