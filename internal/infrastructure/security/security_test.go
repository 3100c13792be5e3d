package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamroster/user-admin/internal/core/domain"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "admin123" {
		t.Fatalf("expected password to be hashed")
	}
	if !h.Verify("admin123", hash) {
		t.Fatalf("expected correct password to verify")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("expected wrong password to fail")
	}
	if h.Verify("admin123", "") {
		t.Fatalf("expected empty hash to fail")
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := NewBcryptHasher(4)
	a, _ := h.Hash("admin123")
	b, _ := h.Hash("admin123")
	if a == b {
		t.Fatalf("expected distinct salts for equal passwords")
	}
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != DefaultBcryptCost {
		t.Fatalf("expected default cost %d, got %d", DefaultBcryptCost, h.cost)
	}
}

func testUser() *domain.User {
	return &domain.User{ID: 7, Email: "u@x.com", Role: domain.RoleManager}
}

func TestJWTManager_IssueVerify(t *testing.T) {
	m := NewJWTManager("secret", 0)

	token, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "u@x.com" || claims.Role != domain.RoleManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != DefaultTokenTTL {
		t.Fatalf("expected 7 day validity, got %s", got)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", DefaultTokenTTL)
	m.now = func() time.Time { return time.Now().Add(-2 * DefaultTokenTTL) }

	token, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// tamper flips one character in the middle of the signature segment.
func tamper(token string) string {
	i := strings.LastIndex(token, ".") + 5
	c := byte('A')
	if token[i] == 'A' {
		c = 'B'
	}
	return token[:i] + string(c) + token[i+1:]
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	good, _ := m.Issue(testUser())

	other := NewJWTManager("other-secret", time.Hour)
	foreign, _ := other.Issue(testUser())

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": 7, "email": "u@x.com", "role": "Admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 7, "email": "u@x.com", "role": "Root", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 7, "email": "u@x.com", "role": "Admin",
	}).SignedString([]byte("secret"))

	cases := map[string]string{
		"garbage":       "not-a-token",
		"tampered":      tamper(good),
		"foreign key":   foreign,
		"alg none":      none,
		"unknown role":  badRole,
		"no expiration": noExp,
	}
	for name, token := range cases {
		if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}

	if _, err := m.Verify(""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("empty token: expected ErrUnauthenticated, got %v", err)
	}
}
