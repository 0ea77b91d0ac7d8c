package domain

import "errors"

const (
	RoleAdmin = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingToken       = errors.New("token not provided")
	ErrInvalidToken       = errors.New("invalid token")
)

// User models a storefront account loaded from static configuration.
// Password holds either a plaintext secret or a bcrypt hash.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// Profile is the public view of a user returned to clients.
type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

func (u *User) Profile() Profile {
	return Profile{Username: u.Username, Role: u.Role, Email: u.Email}
}

// Claims is the verified identity carried by a session token.
type Claims struct {
	Subject string
	Role    string
	Email   string
}

func (c Claims) Profile() Profile {
	return Profile{Username: c.Subject, Role: c.Role, Email: c.Email}
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
