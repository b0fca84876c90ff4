package domain

const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// ValidRole reports whether role is one of the recognised account roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleEmployee
}

// User models an account as stored and as rendered to API clients.
// PasswordHash is never serialized.
type User struct {
	Meta         `bson:",inline"`
	FirstName    string `json:"firstName" bson:"firstName"`
	LastName     string `json:"lastName" bson:"lastName"`
	Email        string `json:"email" bson:"email"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Avatar       string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Role         string `json:"role" bson:"role"`
	Active       bool   `json:"active" bson:"active"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	GoogleID     string `json:"-" bson:"googleId,omitempty"`
}

// CanAuthenticate reports whether this user counts as authenticated.
// An inactive account is treated as logged out regardless of any valid
// session credential it may still hold.
func (u *User) CanAuthenticate() bool {
	return u != nil && u.Active
}
