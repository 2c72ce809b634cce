package model

import "time"

// RolePermissionEventType names a change to the role-permission matrix.
type RolePermissionEventType string

const (
	EventPermissionAssigned  RolePermissionEventType = "permission_assigned"
	EventPermissionRemoved   RolePermissionEventType = "permission_removed"
	EventPermissionsAssigned RolePermissionEventType = "permissions_assigned"
	EventPermissionsCleared  RolePermissionEventType = "permissions_cleared"
	EventPermissionDeleted   RolePermissionEventType = "permission_deleted"
)

// RolePermissionEvent is published after a successful matrix mutation.
type RolePermissionEvent struct {
	Type          RolePermissionEventType `json:"type"`
	RoleID        int                     `json:"role_id,omitempty"`
	PermissionIDs []int                   `json:"permission_ids,omitempty"`
	Count         int                     `json:"count"`
	At            time.Time               `json:"at"`
}
