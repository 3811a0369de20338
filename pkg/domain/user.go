package domain

// Roles the backend assigns to back-office accounts.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is the account record cached with a session.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
