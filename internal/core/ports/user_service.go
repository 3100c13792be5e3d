package ports

import (
	"context"

	"github.com/teamroster/user-admin/internal/core/domain"
)

// CreateUserInput carries an administrator-initiated account creation.
// Empty Role defaults to User, empty Status to Active.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Status   string
}

// UpdateUserInput carries a partial update. Empty fields are left unchanged.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Status   string
}

// UserService defines use-case operations on user records. Every call is
// evaluated against the acting user.
type UserService interface {
	List(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.User, error)
	Create(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}
