package user

import (
	"fmt"
	"strings"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/pkg/errors"
)

// Role is the authorization class of a session user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole normalizes s case-insensitively; anything but admin or customer is rejected.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	switch role {
	case RoleAdmin, RoleCustomer:
		return role, nil
	default:
		return "", errors.Wrapf(apperror.ErrInvalidArgument, "role must be 'admin' or 'customer', got %q", s)
	}
}

// Title returns the role with its first letter capitalized.
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// User is the actor a store session runs as. It is immutable once built.
type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// New builds a user, normalizing role.
func New(username, role string) (User, error) {
	r, err := ParseRole(role)
	if err != nil {
		return User{}, err
	}
	return User{Username: username, Role: r}, nil
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u User) String() string {
	return fmt.Sprintf("Username: %s, Role: %s", u.Username, u.Role.Title())
}
