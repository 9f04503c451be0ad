package domain

// Role is the access level of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin reports whether r grants administrative access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// In reports whether r is one of allowed
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
