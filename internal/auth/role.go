package auth

import "fmt"

// Role is the closed set of actor roles the system knows about.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a raw role string. Unknown values are rejected at the
// boundary so business logic never sees an unexpected role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is the verified caller of a request: who they are and what role
// they act with. Services trust it completely and perform no credential
// checks themselves.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// IsAdmin reports whether the caller acts with the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
