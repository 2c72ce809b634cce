package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
)

// PermissionInput captures the payload for creating or updating a permission.
type PermissionInput struct {
	Name        string
	Description *string
}

// PermissionService manages the permission catalogue.
type PermissionService struct {
	permissions repository.PermissionRepository
	grants      repository.RolePermissionRepository
	publisher   EventPublisher
	log         zerolog.Logger
}

// NewPermissionService constructs a PermissionService.
func NewPermissionService(
	permissions repository.PermissionRepository,
	grants repository.RolePermissionRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) *PermissionService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &PermissionService{
		permissions: permissions,
		grants:      grants,
		publisher:   publisher,
		log:         log.With().Str("component", "permission_service").Logger(),
	}
}

// List returns every permission ordered by name.
func (s *PermissionService) List(ctx context.Context) ([]model.Permission, error) {
	permissions, err := s.permissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return permissions, nil
}

// Get retrieves a permission by ID.
func (s *PermissionService) Get(ctx context.Context, id int) (*model.Permission, error) {
	permission, err := s.permissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("permission %d not found", id)
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return permission, nil
}

// Create provisions a new permission with a unique name.
func (s *PermissionService) Create(ctx context.Context, input PermissionInput) (*model.Permission, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, Validation("permission name is required")
	}

	if existing, err := s.permissions.GetByName(ctx, name); err == nil && existing != nil {
		return nil, Conflict("permission %q already exists", name)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup permission by name: %w", err)
	}

	permission := &model.Permission{
		Name:        name,
		Description: trimOptional(input.Description),
	}
	if err := s.permissions.Create(ctx, permission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("permission %q already exists", name)
		}
		return nil, fmt.Errorf("create permission: %w", err)
	}

	s.log.Info().Int("permission_id", permission.ID).Str("name", name).Msg("permission created")
	return permission, nil
}

// Update renames a permission or changes its description.
func (s *PermissionService) Update(ctx context.Context, id int, input PermissionInput) (*model.Permission, error) {
	permission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != permission.Name {
		existing, err := s.permissions.GetByName(ctx, name)
		if err == nil && existing.ID != id {
			return nil, Conflict("permission %q already exists", name)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("lookup permission by name: %w", err)
		}
		permission.Name = name
	}
	if input.Description != nil {
		permission.Description = trimOptional(input.Description)
	}

	if err := s.permissions.Update(ctx, permission); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, Conflict("permission %q already exists", permission.Name)
		case errors.Is(err, repository.ErrNotFound):
			return nil, NotFound("permission %d not found", id)
		}
		return nil, fmt.Errorf("update permission: %w", err)
	}
	return permission, nil
}

// Delete removes a permission that no role holds.
func (s *PermissionService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	inUse, err := s.grants.CountByPermission(ctx, id)
	if err != nil {
		return fmt.Errorf("count permission usage: %w", err)
	}
	if inUse > 0 {
		return Conflict("permission %d is in use by %d role(s)", id, inUse)
	}

	if err := s.permissions.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return NotFound("permission %d not found", id)
		case errors.Is(err, repository.ErrForeignKey):
			return Conflict("permission %d is in use", id)
		}
		return fmt.Errorf("delete permission: %w", err)
	}

	s.log.Info().Int("permission_id", id).Msg("permission deleted")
	event := model.RolePermissionEvent{
		Type:          model.EventPermissionDeleted,
		PermissionIDs: []int{id},
		At:            time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Msg("failed to publish permission deleted event")
	}
	return nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
