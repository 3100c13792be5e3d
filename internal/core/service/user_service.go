package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/policy"
	"github.com/teamroster/user-admin/internal/core/ports"
	"github.com/teamroster/user-admin/pkg/metrics"
)

// UserService implements user record management behind the authorization
// policy. All policy and validation checks run before any write.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditPublisher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditPublisher, logger zerolog.Logger) *UserService {
	if audit == nil {
		audit = nopAudit{}
	}
	return &UserService{repo: repo, hasher: hasher, audit: audit, logger: logger}
}

// List returns the records the actor's role may see, ordered by id.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	roles := policy.VisibleRoles(actor.Role)
	if len(roles) == 0 {
		return []*domain.User{}, nil
	}
	return s.repo.List(ctx, ports.ListUsersFilter{Roles: roles})
}

func (s *UserService) Get(ctx context.Context, _ domain.Actor, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor domain.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if err := requireCredentials(input.Name, input.Email, input.Password); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if input.Role != "" {
		r, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	status := domain.StatusActive
	if input.Status != "" {
		st, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	if err := policy.AuthorizeCreate(actor, role); err != nil {
		return nil, denied("create", err)
	}

	if err := ensureEmailAvailable(ctx, s.repo, input.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role), "admin").Inc()
	s.audit.Publish(newAuditEvent(domain.AuditCreate, actor.ID, created.ID, "role="+string(created.Role)))
	s.logger.Info().Int64("actor_id", actor.ID).Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")

	return created, nil
}

// Update applies the fields of input the actor is permitted to write. Fields
// outside that set are ignored; a forbidden role value fails the whole call.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var requestedRole *domain.Role
	if input.Role != "" {
		r, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
		requestedRole = &r
	}
	var requestedStatus *domain.Status
	if input.Status != "" {
		st, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		requestedStatus = &st
	}

	fields, err := policy.AuthorizeUpdate(actor, target, requestedRole)
	if err != nil {
		return nil, denied("update", err)
	}

	updated := *target
	var changed []string

	if fields.Has(policy.FieldName) && input.Name != "" && input.Name != target.Name {
		updated.Name = input.Name
		changed = append(changed, "name")
	}
	if fields.Has(policy.FieldEmail) && input.Email != "" && input.Email != target.Email {
		if err := ensureEmailAvailable(ctx, s.repo, input.Email, target.ID); err != nil {
			return nil, err
		}
		updated.Email = input.Email
		changed = append(changed, "email")
	}
	if fields.Has(policy.FieldPassword) && input.Password != "" {
		if err := checkPassword(input.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
		changed = append(changed, "password")
	}
	if fields.Has(policy.FieldRole) && requestedRole != nil && *requestedRole != target.Role {
		updated.Role = *requestedRole
		changed = append(changed, "role")
	}
	if fields.Has(policy.FieldStatus) && requestedStatus != nil && *requestedStatus != target.Status {
		updated.Status = *requestedStatus
		changed = append(changed, "status")
	}

	if len(changed) == 0 {
		return target, nil
	}

	updated.UpdatedAt = time.Now().UTC()
	saved, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.audit.Publish(newAuditEvent(domain.AuditUpdate, actor.ID, saved.ID, fmt.Sprintf("fields=%v", changed)))
	s.logger.Info().Int64("actor_id", actor.ID).Int64("user_id", saved.ID).Strs("fields", changed).Msg("user updated")

	return saved, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := policy.AuthorizeDelete(actor, id); err != nil {
		return denied("delete", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		}
		return err
	}

	s.audit.Publish(newAuditEvent(domain.AuditDelete, actor.ID, id, ""))
	s.logger.Info().Int64("actor_id", actor.ID).Int64("user_id", id).Msg("user deleted")
	return nil
}
