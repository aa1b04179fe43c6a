/*
Package user defines the directory entry model shared by the REST handlers
and the realtime gateway.

The directory is the single source of truth for identity and role; the
gateway reads it but never mutates it.
*/
package user

// Role identifies which Sehra dashboard a user belongs to.
type Role string

const (
	RoleClient     Role = "client"
	RoleVendor     Role = "vendor"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the four known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleVendor, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// User is a read-only directory entry. Fields use JSON tags for
// serialization in WebSocket events and REST responses.
type User struct {
	// ID is the numeric user id assigned by the platform.
	ID int64 `json:"id"`

	// Name is the display name shown in dashboards and notifications.
	Name string `json:"name"`

	// Email is the login identifier, unique across the directory.
	Email string `json:"email"`

	// Role selects the permission set (client, vendor, supervisor, admin).
	Role Role `json:"role"`

	// Package is the wedding package tier booked by a client
	// (e.g. "silver", "gold", "platinum"). Empty for non-clients.
	Package string `json:"package,omitempty"`
}
