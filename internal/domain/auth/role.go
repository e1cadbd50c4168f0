package auth

// Role is the "role" claim carried in access tokens.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RolePending  Role = "pending"
)

// CanViewOthers reports whether the role may read another employee's summary.
func (r Role) CanViewOthers() bool {
	return r == RoleOwner || r == RoleManager
}
