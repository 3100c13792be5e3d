package service

import (
	"context"
	"errors"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/ports"
	"github.com/teamroster/user-admin/pkg/metrics"
)

const minPasswordLength = 6

func requireCredentials(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return domain.NewError(domain.ErrValidation, "Name, email, and password are required")
	}
	return checkPassword(password)
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.NewError(domain.ErrValidation, "Password must be at least 6 characters long")
	}
	return nil
}

// ensureEmailAvailable fails with ErrEmailExists when email belongs to a
// record other than exceptID. Pass 0 when creating.
func ensureEmailAvailable(ctx context.Context, repo ports.UserRepository, email string, exceptID int64) error {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != exceptID {
		return domain.ErrEmailExists
	}
	return nil
}

// denied records a policy refusal for operation and hands err back.
func denied(operation string, err error) error {
	if errors.Is(err, domain.ErrForbidden) {
		metrics.PolicyDenialsTotal.WithLabelValues(operation).Inc()
	}
	return err
}
