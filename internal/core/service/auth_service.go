package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/policy"
	"github.com/teamroster/user-admin/internal/core/ports"
	"github.com/teamroster/user-admin/pkg/metrics"
)

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenManager
	limiter ports.LoginLimiter
	audit   ports.AuditPublisher
	logger  zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the auth use cases. limiter and audit may be nil, in
// which case throttling and auditing are skipped.
func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	limiter ports.LoginLimiter,
	audit ports.AuditPublisher,
	logger zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = nopLimiter{}
	}
	if audit == nil {
		audit = nopAudit{}
	}
	return &AuthService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		audit:   audit,
		logger:  logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if err := requireCredentials(input.Name, input.Email, input.Password); err != nil {
		return nil, err
	}

	role, err := policy.AuthorizeRegistration(input.Role)
	if err != nil {
		return nil, denied("register", err)
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
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmailExists) {
			s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to register user")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role), "register").Inc()
	metrics.AuthAttemptsTotal.WithLabelValues("registered").Inc()
	s.audit.Publish(newAuditEvent(domain.AuditRegister, created.ID, created.ID, "self-registration"))
	s.logger.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user registered")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords are reported identically; the inactive check only runs once the
// password has matched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.NewError(domain.ErrValidation, "Email and password are required")
	}

	allowed, err := s.limiter.Allowed(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		allowed = true
	}
	if !allowed {
		metrics.AuthAttemptsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		// Burn the same bcrypt time as a real comparison.
		s.hasher.Verify(password, s.fallbackHash())
		return nil, s.failLogin(ctx, email)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, s.failLogin(ctx, email)
	}

	if err := policy.AuthorizeLogin(user); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("inactive").Inc()
		metrics.PolicyDenialsTotal.WithLabelValues("login").Inc()
		return nil, err
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login limiter")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	s.audit.Publish(newAuditEvent(domain.AuditLogin, user.ID, user.ID, ""))

	return &ports.AuthResult{User: user, Token: token}, nil
}

// Me returns the current record of the authenticated user.
func (s *AuthService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	return s.repo.FindByID(ctx, actor.ID)
}

func (s *AuthService) failLogin(ctx context.Context, email string) error {
	metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
	return domain.ErrInvalidCredentials
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to build fallback hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

type nopLimiter struct{}

func (nopLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (nopLimiter) Fail(context.Context, string) error            { return nil }
func (nopLimiter) Reset(context.Context, string) error           { return nil }
