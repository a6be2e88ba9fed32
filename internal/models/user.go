package models

import "github.com/thenoetrevino/leadboard/internal/types"

// Role is the authorization level of a CRM user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a row of the users table
type User struct {
	ID   types.UserID `json:"id"`
	Name string       `json:"name"`
	Role Role         `json:"role"`
}
