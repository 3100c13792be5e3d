package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	// blindLookups makes FindByEmail miss, so only Create's uniqueness
	// check guards against duplicates (mirrors a racing pre-check).
	blindLookups bool
	calls        int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.blindLookups {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []*domain.User
	for _, u := range r.users {
		for _, role := range f.Roles {
			if u.Role == role {
				out = append(out, cloneUser(u))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// seed stores a user directly, bypassing the service.
func (r *stubUserRepo) seed(name, email string, role domain.Role, status domain.Status) *domain.User {
	u, _ := r.Create(context.Background(), &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashed:admin123",
		Role:         role,
		Status:       status,
	})
	return u
}

// ---------------------------------------------------------------------------
// Other stubs
// ---------------------------------------------------------------------------

type stubHasher struct{}

func (stubHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (stubHasher) Verify(p, h string) bool       { return h == "hashed:"+p }

type stubTokens struct{}

func (stubTokens) Issue(u *domain.User) (string, error) { return "token-" + u.Email, nil }
func (stubTokens) Verify(string) (*domain.Claims, error) {
	return nil, domain.ErrInvalidToken
}

type stubLimiter struct {
	blocked  bool
	failures map[string]int
	resets   int
}

func newStubLimiter() *stubLimiter { return &stubLimiter{failures: map[string]int{}} }

func (l *stubLimiter) Allowed(context.Context, string) (bool, error) { return !l.blocked, nil }
func (l *stubLimiter) Fail(_ context.Context, key string) error {
	l.failures[key]++
	return nil
}
func (l *stubLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *recordingAudit) Publish(e domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAudit) actions() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.events))
	for _, e := range a.events {
		names = append(names, string(e.Action))
	}
	return strings.Join(names, ",")
}

type stubAuditRepo struct {
	lastLimit int
}

func (r *stubAuditRepo) Record(context.Context, domain.AuditEvent) error { return nil }
func (r *stubAuditRepo) Recent(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	r.lastLimit = limit
	return []domain.AuditEvent{}, nil
}
