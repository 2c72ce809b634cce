package model

import "time"

// Permission is a named capability that can be granted to roles.
type Permission struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Permission names seeded by cmd/seed.
const (
	PermissionBookingsRead    = "bookings:read"
	PermissionBookingsWrite   = "bookings:write"
	PermissionBookingsCancel  = "bookings:cancel"
	PermissionReviewsRead     = "reviews:read"
	PermissionReviewsModerate = "reviews:moderate"
	PermissionUsersRead       = "users:read"
	PermissionUsersWrite      = "users:write"
	PermissionRolesRead       = "roles:read"
	PermissionRolesWrite      = "roles:write"
	PermissionReferenceWrite  = "reference:write"
)

// DefaultPermissions lists the seeded permissions with their descriptions.
var DefaultPermissions = map[string]string{
	PermissionBookingsRead:    "View hotel bookings",
	PermissionBookingsWrite:   "Create and update bookings",
	PermissionBookingsCancel:  "Cancel bookings on behalf of guests",
	PermissionReviewsRead:     "View guest reviews",
	PermissionReviewsModerate: "Hide or remove guest reviews",
	PermissionUsersRead:       "View user accounts",
	PermissionUsersWrite:      "Create and update user accounts",
	PermissionRolesRead:       "View roles and their permissions",
	PermissionRolesWrite:      "Grant and revoke role permissions",
	PermissionReferenceWrite:  "Maintain countries and currencies",
}

// DefaultGrants maps each seeded role to its initial permissions.
var DefaultGrants = map[string][]string{
	RoleSupervisor: {
		PermissionBookingsRead, PermissionBookingsWrite, PermissionBookingsCancel,
		PermissionReviewsRead, PermissionReviewsModerate,
		PermissionUsersRead, PermissionRolesRead,
	},
	RoleReceptionist: {
		PermissionBookingsRead, PermissionBookingsWrite, PermissionReviewsRead,
	},
	RoleGuest: {
		PermissionBookingsRead, PermissionReviewsRead,
	},
}
