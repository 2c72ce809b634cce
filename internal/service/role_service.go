package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
)

// RoleService exposes the seeded roles. Roles are not editable at runtime.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// ListRoles returns all roles sorted by name.
func (s *RoleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	sortRolesByName(roles)
	return roles, nil
}

// GetRole retrieves a role by ID.
func (s *RoleService) GetRole(ctx context.Context, id int) (*model.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("role %d not found", id)
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}
