package model

// Role names seeded by cmd/seed. Roles are read-only at runtime.
const (
	RoleAdmin        = "ADMIN"
	RoleSupervisor   = "SUPERVISOR"
	RoleReceptionist = "RECEPTIONIST"
	RoleGuest        = "GUEST"
)

// Role represents an RBAC role.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RolePermission is the association between a role and a granted permission.
// Role and Permission are populated when the record is returned from an assignment.
type RolePermission struct {
	RoleID       int         `json:"role_id"`
	PermissionID int         `json:"permission_id"`
	Role         *Role       `json:"role,omitempty"`
	Permission   *Permission `json:"permission,omitempty"`
}

// RoleGrant is a flattened role/permission pair used to build the matrix in one query.
type RoleGrant struct {
	RoleID     int
	Permission Permission
}

// RolePermissionRow is one role of the matrix with its granted permissions.
type RolePermissionRow struct {
	Role          Role         `json:"role"`
	Permissions   []Permission `json:"permissions"`
	PermissionIDs []int        `json:"permission_ids"`
}

// RolePermissionMatrix is the full grid: every role and every permission, both sorted by name.
type RolePermissionMatrix struct {
	Roles       []RolePermissionRow `json:"roles"`
	Permissions []Permission        `json:"permissions"`
}
