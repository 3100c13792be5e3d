package ports

import (
	"context"

	"github.com/teamroster/user-admin/internal/core/domain"
)

// RegisterInput carries a self-registration request. Role is whatever the
// caller asked for and may be empty.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, actor domain.Actor) (*domain.User, error)
}
