package authorization

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

func (r UserRole) String() string {
	return string(r)
}

// IsAdmin reports whether the role carries administrative privileges.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r UserRole) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
