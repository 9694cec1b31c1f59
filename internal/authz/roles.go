package authz

// Role is the coarse access category assigned to a principal.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePartner  Role = "partner"
	RoleCustomer Role = "customer"
)

// Permission is a fine-grained boolean access check.
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionWrite  Permission = "write"
	PermissionDelete Permission = "delete"
	PermissionAdmin  Permission = "admin"
	// PermissionMaster unlocks every other permission when granted,
	// independently of the primary role.
	PermissionMaster Permission = "master"
)

// RoleMatrix enumerates which roles satisfy a permission. Kept explicit so
// access changes stay reviewable.
var RoleMatrix = map[Permission][]Role{
	PermissionRead: {
		RoleAdmin,
		RolePartner,
		RoleCustomer,
	},
	PermissionWrite: {
		RoleAdmin,
		RolePartner,
	},
	PermissionDelete: {
		RoleAdmin,
		RolePartner,
	},
	PermissionAdmin: {
		RoleAdmin,
	},
	PermissionMaster: {},
}

// RolesSatisfy reports whether any of the granted roles is listed for the
// permission in the matrix.
func RolesSatisfy(granted []Role, permission Permission) bool {
	allowed := RoleMatrix[permission]
	if len(granted) == 0 || len(allowed) == 0 {
		return false
	}
	set := make(map[Role]struct{}, len(granted))
	for _, role := range granted {
		set[role] = struct{}{}
	}
	for _, required := range allowed {
		if _, ok := set[required]; ok {
			return true
		}
	}
	return false
}

// ValidRole reports whether the string names a known role.
func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RolePartner, RoleCustomer:
		return true
	}
	return false
}
