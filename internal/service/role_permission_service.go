package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
)

// RolePermissionService maintains which permissions are granted to which roles.
// It holds no mutable state; the unique index on (role_id, permission_id)
// settles concurrent grants of the same pair.
type RolePermissionService struct {
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	grants      repository.RolePermissionRepository
	publisher   EventPublisher
	log         zerolog.Logger
}

// NewRolePermissionService creates a new RolePermissionService.
// A nil publisher disables change events.
func NewRolePermissionService(
	roles repository.RoleRepository,
	permissions repository.PermissionRepository,
	grants repository.RolePermissionRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) *RolePermissionService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &RolePermissionService{
		roles:       roles,
		permissions: permissions,
		grants:      grants,
		publisher:   publisher,
		log:         log.With().Str("component", "role_permission_service").Logger(),
	}
}

// GetRolePermissions returns the permissions currently granted to a role.
func (s *RolePermissionService) GetRolePermissions(ctx context.Context, roleID int) ([]model.Permission, error) {
	if _, err := s.requireRole(ctx, roleID); err != nil {
		return nil, err
	}

	permissions, err := s.grants.ListPermissionsByRole(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	return permissions, nil
}

// AssignPermissionToRole grants a single permission and returns the new
// association joined with its role and permission.
func (s *RolePermissionService) AssignPermissionToRole(ctx context.Context, roleID, permissionID int) (*model.RolePermission, error) {
	role, err := s.requireRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	permission, err := s.requirePermission(ctx, permissionID)
	if err != nil {
		return nil, err
	}

	_, err = s.grants.Find(ctx, roleID, permissionID)
	switch {
	case err == nil:
		return nil, Conflict("permission %d is already assigned to role %d", permissionID, roleID)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find role permission: %w", err)
	}

	if err := s.grants.Create(ctx, roleID, permissionID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, Conflict("permission %d is already assigned to role %d", permissionID, roleID)
		case errors.Is(err, repository.ErrForeignKey):
			return nil, NotFound("role %d or permission %d no longer exists", roleID, permissionID)
		}
		return nil, fmt.Errorf("create role permission: %w", err)
	}

	s.log.Info().Int("role_id", roleID).Int("permission_id", permissionID).Msg("permission assigned")
	s.publish(ctx, model.RolePermissionEvent{
		Type:          model.EventPermissionAssigned,
		RoleID:        roleID,
		PermissionIDs: []int{permissionID},
		Count:         1,
	})

	return &model.RolePermission{
		RoleID:       roleID,
		PermissionID: permissionID,
		Role:         role,
		Permission:   permission,
	}, nil
}

// RemovePermissionFromRole revokes a single permission. Revoking a pair that
// is not assigned fails, so repeated calls are not idempotent.
func (s *RolePermissionService) RemovePermissionFromRole(ctx context.Context, roleID, permissionID int) error {
	if _, err := s.grants.Find(ctx, roleID, permissionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("permission %d is not assigned to role %d", permissionID, roleID)
		}
		return fmt.Errorf("find role permission: %w", err)
	}

	if err := s.grants.Delete(ctx, roleID, permissionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("permission %d is not assigned to role %d", permissionID, roleID)
		}
		return fmt.Errorf("delete role permission: %w", err)
	}

	s.log.Info().Int("role_id", roleID).Int("permission_id", permissionID).Msg("permission removed")
	s.publish(ctx, model.RolePermissionEvent{
		Type:          model.EventPermissionRemoved,
		RoleID:        roleID,
		PermissionIDs: []int{permissionID},
		Count:         1,
	})
	return nil
}

// AssignMultiplePermissionsToRole grants every requested permission that the
// role does not already hold and returns how many were created.
//
// The whole batch is rejected when any id is unknown. Ids already assigned are
// skipped, but a request where every id is already assigned fails with a
// conflict instead of succeeding with zero.
func (s *RolePermissionService) AssignMultiplePermissionsToRole(ctx context.Context, roleID int, permissionIDs []int) (int, error) {
	if _, err := s.requireRole(ctx, roleID); err != nil {
		return 0, err
	}

	requested := uniqueIDs(permissionIDs)
	if len(requested) == 0 {
		return 0, Validation("permission_ids must contain at least one id")
	}

	found, err := s.permissions.CountByIDs(ctx, requested)
	if err != nil {
		return 0, fmt.Errorf("count permissions: %w", err)
	}
	if found < len(requested) {
		return 0, Validation("one or more permissions not found")
	}

	assigned, err := s.grants.ListPermissionIDsByRole(ctx, roleID)
	if err != nil {
		return 0, fmt.Errorf("list assigned permissions: %w", err)
	}

	toCreate := difference(requested, assigned)
	if len(toCreate) == 0 {
		return 0, Conflict("all requested permissions are already assigned to role %d", roleID)
	}

	created, err := s.grants.CreateMany(ctx, roleID, toCreate)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return 0, Conflict("role %d permissions changed concurrently, retry the request", roleID)
		case errors.Is(err, repository.ErrForeignKey):
			return 0, Validation("one or more permissions not found")
		}
		return 0, fmt.Errorf("create role permissions: %w", err)
	}

	s.log.Info().
		Int("role_id", roleID).
		Int("requested", len(requested)).
		Int64("created", created).
		Msg("permissions assigned")
	s.publish(ctx, model.RolePermissionEvent{
		Type:          model.EventPermissionsAssigned,
		RoleID:        roleID,
		PermissionIDs: toCreate,
		Count:         int(created),
	})

	return int(created), nil
}

// RemoveAllPermissionsFromRole revokes every permission of a role. A role
// without permissions yields zero and no error.
func (s *RolePermissionService) RemoveAllPermissionsFromRole(ctx context.Context, roleID int) (int, error) {
	if _, err := s.requireRole(ctx, roleID); err != nil {
		return 0, err
	}

	removed, err := s.grants.DeleteByRole(ctx, roleID)
	if err != nil {
		return 0, fmt.Errorf("delete role permissions: %w", err)
	}

	s.log.Info().Int("role_id", roleID).Int64("removed", removed).Msg("permissions cleared")
	if removed > 0 {
		s.publish(ctx, model.RolePermissionEvent{
			Type:   model.EventPermissionsCleared,
			RoleID: roleID,
			Count:  int(removed),
		})
	}

	return int(removed), nil
}

// GetRolePermissionMatrix returns every role with its granted permissions and
// the full permission list, both sorted by name.
func (s *RolePermissionService) GetRolePermissionMatrix(ctx context.Context) (*model.RolePermissionMatrix, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	permissions, err := s.permissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	grants, err := s.grants.ListGrants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}

	byRole := make(map[int][]model.Permission, len(roles))
	for _, g := range grants {
		byRole[g.RoleID] = append(byRole[g.RoleID], g.Permission)
	}

	sortRolesByName(roles)
	sortPermissionsByName(permissions)

	rows := make([]model.RolePermissionRow, 0, len(roles))
	for _, role := range roles {
		granted := byRole[role.ID]
		sortPermissionsByName(granted)

		row := model.RolePermissionRow{
			Role:          role,
			Permissions:   make([]model.Permission, 0, len(granted)),
			PermissionIDs: make([]int, 0, len(granted)),
		}
		for _, p := range granted {
			row.Permissions = append(row.Permissions, p)
			row.PermissionIDs = append(row.PermissionIDs, p.ID)
		}
		rows = append(rows, row)
	}

	return &model.RolePermissionMatrix{Roles: rows, Permissions: permissions}, nil
}

func (s *RolePermissionService) requireRole(ctx context.Context, roleID int) (*model.Role, error) {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("role %d not found", roleID)
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

func (s *RolePermissionService) requirePermission(ctx context.Context, permissionID int) (*model.Permission, error) {
	permission, err := s.permissions.GetByID(ctx, permissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("permission %d not found", permissionID)
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return permission, nil
}

// publish runs after the mutation is committed, so failures are only logged.
func (s *RolePermissionService) publish(ctx context.Context, event model.RolePermissionEvent) {
	event.At = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(event.Type)).Msg("failed to publish role permission event")
	}
}
