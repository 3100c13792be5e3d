// Package seed loads initial accounts from a YAML file into the user store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/ports"
)

type Entry struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Status   string `yaml:"status"`
}

type File struct {
	Users []Entry `yaml:"users"`
}

// Result summarises one seeding run.
type Result struct {
	Purged  int64
	Created int
	Skipped int
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

const minPasswordLength = 6

// Parse decodes and checks a seed document. Every entry needs a name, email
// and a password of at least six characters, and any role or status given
// must be a known value.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.Name == "" || u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("seed entry %d: name, email and password are required", i)
		}
		if len(u.Password) < minPasswordLength {
			return nil, fmt.Errorf("seed entry %d: password must be at least %d characters", i, minPasswordLength)
		}
		if u.Role != "" {
			if _, err := domain.ParseRole(u.Role); err != nil {
				return nil, fmt.Errorf("seed entry %d: %w", i, err)
			}
		}
		if u.Status != "" {
			if _, err := domain.ParseStatus(u.Status); err != nil {
				return nil, fmt.Errorf("seed entry %d: %w", i, err)
			}
		}
	}
	return &f, nil
}

// Seeder writes seed entries straight to the repository. It bypasses the
// authorization policy, so it is only reachable from the seed command.
type Seeder struct {
	repo   ports.UserRepository
	purger ports.UserPurger
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

// NewSeeder builds a Seeder. purger may be nil when wiping is never needed.
func NewSeeder(repo ports.UserRepository, purger ports.UserPurger, hasher ports.PasswordHasher, log zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, purger: purger, hasher: hasher, log: log}
}

// Run inserts every entry whose email is not already stored. With force set,
// all existing users are deleted first.
func (s *Seeder) Run(ctx context.Context, f *File, force bool) (Result, error) {
	var res Result

	if force {
		if s.purger == nil {
			return res, errors.New("seed: store does not support wiping")
		}
		n, err := s.purger.DeleteAll(ctx)
		if err != nil {
			return res, fmt.Errorf("wipe users: %w", err)
		}
		res.Purged = n
		s.log.Warn().Int64("deleted", n).Msg("existing users wiped")
	}

	for _, u := range f.Users {
		if _, err := s.repo.FindByEmail(ctx, u.Email); err == nil {
			res.Skipped++
			s.log.Info().Str("email", u.Email).Msg("seed user exists, skipping")
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return res, err
		}

		hash, err := s.hasher.Hash(u.Password)
		if err != nil {
			return res, err
		}

		role, status := domain.RoleUser, domain.StatusActive
		if u.Role != "" {
			role = domain.Role(u.Role)
		}
		if u.Status != "" {
			status = domain.Status(u.Status)
		}

		now := time.Now().UTC()
		created, err := s.repo.Create(ctx, &domain.User{
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: hash,
			Role:         role,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", u.Email, err)
		}
		res.Created++
		s.log.Info().Int64("user_id", created.ID).Str("email", created.Email).Str("role", string(created.Role)).Msg("seed user created")
	}

	return res, nil
}
