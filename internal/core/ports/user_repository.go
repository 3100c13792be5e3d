package ports

import (
	"context"

	"github.com/teamroster/user-admin/internal/core/domain"
)

// ListUsersFilter narrows a user listing. Roles must be non-empty; callers
// that may see nothing should not query at all.
type ListUsersFilter struct {
	Roles []domain.Role
}

// UserRepository defines the persistence contract for user records.
//
// Create and Update map a storage-level unique violation on email to
// domain.ErrEmailExists. Lookups that match nothing return
// domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserPurger wipes every user record. Only the seeder uses it.
type UserPurger interface {
	DeleteAll(ctx context.Context) (int64, error)
}
