package auth

import (
	"context"

	"github.com/georgemunganga/printa-retail/internal/modules/user"
)

// Service issues and verifies session tokens carrying a declared username and role.
type Service interface {
	IssueToken(ctx context.Context, username, role string) (string, error)
	ParseToken(ctx context.Context, token string) (user.User, error)
}
