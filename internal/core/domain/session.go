// internal/core/domain/session.go
package domain

// Role is the server-assigned role of a user
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENTE"
)

// Durable store keys
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// User is the profile returned at login
type User struct {
	ID    ID     `json:"id,omitempty"`
	Name  string `json:"nombre"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"rol"`
}

// IsAdmin reports whether the user may manage the inventory
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GuestUser is shown when no usable profile is stored
func GuestUser() User {
	return User{Name: "Invitado", Role: RoleClient}
}

// Session is the credential persisted between runs
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session carries a token
func (s Session) Authenticated() bool {
	return s.Token != ""
}
