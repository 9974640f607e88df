package domain

// Permission is a single capability bit. A role's permission mask is the OR
// of its bits.
type Permission int

const (
	PermissionFollow     Permission = 1
	PermissionWrite      Permission = 2
	PermissionComment    Permission = 4
	PermissionModerate   Permission = 8
	PermissionAdminister Permission = 128
)

// RoleNameDefault is the role assigned to newly registered accounts.
const RoleNameDefault = "User"

// Role groups a permission mask under a name. Exactly one role is flagged as
// the default.
type Role struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Default     bool       `json:"default" db:"is_default"`
	Permissions Permission `json:"permissions" db:"permissions"`
}

// Has reports whether every bit of p is present in the role's mask.
func (r Role) Has(p Permission) bool {
	return r.Permissions&p == p
}

// SeedRoles returns the canonical role set the database is seeded with.
func SeedRoles() []Role {
	return []Role{
		{Name: RoleNameDefault, Default: true, Permissions: PermissionFollow | PermissionWrite | PermissionComment},
		{Name: "Moderator", Permissions: PermissionFollow | PermissionWrite | PermissionComment | PermissionModerate},
		{Name: "Administrator", Permissions: PermissionFollow | PermissionWrite | PermissionComment | PermissionModerate | PermissionAdminister},
	}
}
