package authorization

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleModeler UserRole = "modeler"
	RoleQA      UserRole = "qa"
	RoleClient  UserRole = "client"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModeler, RoleQA, RoleClient:
		return true
	}
	return false
}

// ParseUserRole returns ok=false for anything outside the closed role set.
func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(s)
	return role, role.IsValid()
}
