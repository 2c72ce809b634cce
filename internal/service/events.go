package service

import (
	"context"

	"github.com/stayhub/hotel-booking-backend/internal/model"
)

// EventPublisher fans out role-permission changes to live subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event model.RolePermissionEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.RolePermissionEvent) error { return nil }
