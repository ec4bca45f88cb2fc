package model

// Role is the access level of the signed-in user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleViewer  Role = "viewer"
)

// CanEditBOM reports whether the role may add, edit or delete BOM components.
func (r Role) CanEditBOM() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

// User is the /auth/me response.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// Session is the /auth/login response.
type Session struct {
	Token string `json:"access_token"`
	User  User   `json:"user"`
}
