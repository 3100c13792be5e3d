package policy

import (
	"errors"
	"testing"

	"github.com/teamroster/user-admin/internal/core/domain"
)

var (
	admin   = domain.Actor{ID: 1, Email: "a@x.com", Role: domain.RoleAdmin}
	manager = domain.Actor{ID: 2, Email: "m@x.com", Role: domain.RoleManager}
	user    = domain.Actor{ID: 3, Email: "u@x.com", Role: domain.RoleUser}
)

func record(a domain.Actor) *domain.User {
	return &domain.User{ID: a.ID, Email: a.Email, Role: a.Role, Status: domain.StatusActive}
}

func rolePtr(r domain.Role) *domain.Role { return &r }

func TestVisibleRoles(t *testing.T) {
	users := []*domain.User{record(admin), record(manager), record(user)}

	cases := []struct {
		actor domain.Role
		want  []int64
	}{
		{domain.RoleAdmin, []int64{1, 2, 3}},
		{domain.RoleManager, []int64{2, 3}},
		{domain.RoleUser, []int64{3}},
		{domain.Role("Guest"), nil},
	}

	for _, tc := range cases {
		var got []int64
		for _, u := range users {
			if CanView(tc.actor, u) {
				got = append(got, u.ID)
			}
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.actor, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.actor, tc.want, got)
			}
		}
	}
}

func TestAuthorizeEdit(t *testing.T) {
	otherUser := &domain.User{ID: 9, Role: domain.RoleUser}
	otherManager := &domain.User{ID: 8, Role: domain.RoleManager}

	cases := []struct {
		name   string
		actor  domain.Actor
		target *domain.User
		want   FieldSet
		denied bool
	}{
		{"admin edits admin", admin, record(admin), AllFields, false},
		{"admin edits manager", admin, otherManager, AllFields, false},
		{"manager edits self", manager, record(manager), AllFields, false},
		{"manager edits user", manager, otherUser, AllFields, false},
		{"manager edits other manager", manager, otherManager, 0, true},
		{"manager edits admin", manager, record(admin), 0, true},
		{"user edits self", user, record(user), FieldEmail | FieldPassword, false},
		{"user edits other user", user, otherUser, 0, true},
		{"unknown role", domain.Actor{ID: 9, Role: "Guest"}, otherUser, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AuthorizeEdit(tc.actor, tc.target)
			if tc.denied {
				if !errors.Is(err, domain.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected fields %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAuthorizeUpdate_RoleEscalation(t *testing.T) {
	targetUser := &domain.User{ID: 9, Role: domain.RoleUser}

	cases := []struct {
		name      string
		actor     domain.Actor
		target    *domain.User
		requested *domain.Role
		denied    bool
	}{
		{"manager promotes self to admin", manager, record(manager), rolePtr(domain.RoleAdmin), true},
		{"manager keeps own manager role", manager, record(manager), rolePtr(domain.RoleManager), false},
		{"manager demotes self to user", manager, record(manager), rolePtr(domain.RoleUser), true},
		{"manager promotes user to manager", manager, targetUser, rolePtr(domain.RoleManager), true},
		{"manager promotes user to admin", manager, targetUser, rolePtr(domain.RoleAdmin), true},
		{"manager keeps user role", manager, targetUser, rolePtr(domain.RoleUser), false},
		{"admin promotes user to manager", admin, targetUser, rolePtr(domain.RoleManager), false},
		{"admin promotes user to admin", admin, targetUser, rolePtr(domain.RoleAdmin), false},
		{"no role requested", manager, targetUser, nil, false},
		{"user asks for admin", user, record(user), rolePtr(domain.RoleAdmin), true},
		{"user asks for manager", user, record(user), rolePtr(domain.RoleManager), true},
		// Restating the current role is not an escalation; the field is still not writable.
		{"user restates own role", user, record(user), rolePtr(domain.RoleUser), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields, err := AuthorizeUpdate(tc.actor, tc.target, tc.requested)
			if tc.denied {
				if !errors.Is(err, domain.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.actor.Role == domain.RoleUser && fields.Has(FieldRole) {
				t.Fatalf("user must not be allowed to write role")
			}
		})
	}
}

func TestAuthorizeRegistration(t *testing.T) {
	for _, requested := range []string{"", "User"} {
		role, err := AuthorizeRegistration(requested)
		if err != nil || role != domain.RoleUser {
			t.Fatalf("%q: expected User, got %q (%v)", requested, role, err)
		}
	}
	for _, requested := range []string{"Admin", "Manager", "root"} {
		role, err := AuthorizeRegistration(requested)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%q: expected ErrForbidden, got %v", requested, err)
		}
		if role == domain.RoleAdmin {
			t.Fatalf("%q: registration must never yield Admin", requested)
		}
	}
}

func TestAuthorizeCreate(t *testing.T) {
	if err := AuthorizeCreate(admin, domain.RoleAdmin); err != nil {
		t.Fatalf("admin creating admin: %v", err)
	}
	if err := AuthorizeCreate(manager, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager creating admin: expected ErrForbidden, got %v", err)
	}
	if err := AuthorizeCreate(manager, domain.RoleUser); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager creating user: expected ErrForbidden, got %v", err)
	}
}

func TestAuthorizeDelete(t *testing.T) {
	cases := []struct {
		name     string
		actor    domain.Actor
		targetID int64
		denied   bool
	}{
		{"admin deletes self", admin, admin.ID, true},
		{"admin deletes other", admin, user.ID, false},
		{"manager deletes self", manager, manager.ID, false},
		{"manager deletes user", manager, user.ID, true},
		{"user deletes self", user, user.ID, false},
		{"user deletes other", user, manager.ID, true},
	}

	for _, tc := range cases {
		err := AuthorizeDelete(tc.actor, tc.targetID)
		if tc.denied != errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: denied=%v, got err %v", tc.name, tc.denied, err)
		}
	}
}

func TestAuthorizeLogin(t *testing.T) {
	if err := AuthorizeLogin(&domain.User{Status: domain.StatusActive}); err != nil {
		t.Fatalf("active user: %v", err)
	}
	if err := AuthorizeLogin(&domain.User{Status: domain.StatusInactive}); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("inactive user: expected ErrAccountInactive, got %v", err)
	}
}

func TestFieldSetString(t *testing.T) {
	if got := (FieldEmail | FieldPassword).String(); got != "email,password" {
		t.Fatalf("unexpected string: %s", got)
	}
}
