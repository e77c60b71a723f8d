package domain

// Role gates which actions a session may perform.
type Role string

const (
	RoleDriver   Role = "driver"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDriver, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// User represents the authenticated user as returned by the backend.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

// Session is the locally held auth state: the bearer token plus the user
// it belongs to. The zero value is the unauthenticated session.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
