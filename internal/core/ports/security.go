package ports

import "github.com/teamroster/user-admin/internal/core/domain"

// PasswordHasher is a one-way salted hash over plaintext credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenManager issues and verifies session tokens. Verify returns
// domain.ErrInvalidToken for anything it cannot trust.
type TokenManager interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.Claims, error)
}
