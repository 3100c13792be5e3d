package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/user-admin/internal/api/middleware"
	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn       func(ctx context.Context, actor domain.Actor) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	return s.meFn(ctx, actor)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withActor(c echo.Context, id int64, role domain.Role) {
	c.Set(middleware.ClaimsKey, &domain.Claims{UserID: id, Email: "actor@example.com", Role: role})
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "secret1" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				User:  &domain.User{ID: 4, Name: in.Name, Email: in.Email, PasswordHash: "hash", Role: domain.RoleUser, Status: domain.StatusActive},
				Token: "tok",
			}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "User" || user["status"] != "Active" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	bodies := []string{
		`{"email":"a@x.com","password":"secret1"}`,
		`{"name":"A","email":"not-an-email","password":"secret1"}`,
		`{"name":"A","email":"a@x.com","password":"123"}`,
		`{"name":`,
	}
	for _, body := range bodies {
		c, _ := newJSONContext(http.MethodPost, "/api/auth/register", body)
		err := NewAuthHandler(stub).Register(c)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestAuthHandler_Register_ServiceError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrEmailExists
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", `{"name":"B","email":"b@x.com","password":"secret1"}`)
	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "admin@example.com" || password != "admin123" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.AuthResult{User: &domain.User{ID: 1, Email: email, Role: domain.RoleAdmin}, Token: "tok"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"admin123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	c, _ = newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"admin@example.com"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(_ context.Context, actor domain.Actor) (*domain.User, error) {
			return &domain.User{ID: actor.ID, Email: actor.Email, Role: actor.Role}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without claims, got %v", err)
	}

	c, rec := newJSONContext(http.MethodGet, "/api/auth/me", "")
	withActor(c, 9, domain.RoleManager)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var user map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &user)
	if user["id"] != float64(9) || user["role"] != "Manager" {
		t.Fatalf("unexpected payload: %+v", user)
	}
}
