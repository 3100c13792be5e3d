// Package policy holds the authorization rules for user records.
//
// Every function here is pure: it looks only at its arguments, never at
// storage, and returns either a permission or an error wrapping
// domain.ErrForbidden (or domain.ErrAccountInactive for sign-in).
package policy

import (
	"strings"

	"github.com/teamroster/user-admin/internal/core/domain"
)

// FieldSet is a bit set of user fields an actor may mutate.
type FieldSet uint8

const (
	FieldName FieldSet = 1 << iota
	FieldEmail
	FieldPassword
	FieldRole
	FieldStatus
)

const AllFields = FieldName | FieldEmail | FieldPassword | FieldRole | FieldStatus

var fieldNames = []struct {
	f    FieldSet
	name string
}{
	{FieldName, "name"},
	{FieldEmail, "email"},
	{FieldPassword, "password"},
	{FieldRole, "role"},
	{FieldStatus, "status"},
}

func (s FieldSet) Has(f FieldSet) bool { return s&f == f }

func (s FieldSet) String() string {
	names := make([]string, 0, len(fieldNames))
	for _, fn := range fieldNames {
		if s.Has(fn.f) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, ",")
}

func forbidden(msg string) error {
	return domain.NewError(domain.ErrForbidden, msg)
}

// VisibleRoles returns the target roles an actor may list. A nil result means
// nothing is visible.
func VisibleRoles(actor domain.Role) []domain.Role {
	switch actor {
	case domain.RoleAdmin:
		return []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleUser}
	case domain.RoleManager:
		return []domain.Role{domain.RoleManager, domain.RoleUser}
	case domain.RoleUser:
		return []domain.Role{domain.RoleUser}
	}
	return nil
}

// CanView is the list-visibility predicate over a single record.
func CanView(actor domain.Role, target *domain.User) bool {
	for _, r := range VisibleRoles(actor) {
		if r == target.Role {
			return true
		}
	}
	return false
}

// AuthorizeEdit decides whether actor may edit target at all and, if so,
// which fields it may touch. Role values are checked separately by
// AuthorizeRoleChange.
func AuthorizeEdit(actor domain.Actor, target *domain.User) (FieldSet, error) {
	self := actor.Is(target.ID)

	switch actor.Role {
	case domain.RoleAdmin:
		return AllFields, nil
	case domain.RoleManager:
		if self || target.Role == domain.RoleUser {
			return AllFields, nil
		}
		return 0, forbidden("Managers can only edit their own account and User role accounts.")
	case domain.RoleUser:
		if self {
			return FieldEmail | FieldPassword, nil
		}
		return 0, forbidden("You can only edit your own account.")
	}
	return 0, forbidden("You are not allowed to edit this account.")
}

// AuthorizeRoleChange applies the escalation rule: only an Admin may grant
// Admin, only an Admin may move someone into Manager, and non-Admins may not
// change a role at all. Keeping the current role is always allowed except
// for Admin, which only an Admin may even request.
func AuthorizeRoleChange(actor domain.Actor, target *domain.User, requested domain.Role) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}

	switch requested {
	case domain.RoleAdmin:
		return forbidden("Only administrators can set or change roles to Admin.")
	case domain.RoleManager:
		if target.Role != domain.RoleManager {
			return forbidden("Only administrators can change roles to Manager.")
		}
	case domain.RoleUser:
		if target.Role != domain.RoleUser {
			return forbidden("Only administrators can change roles.")
		}
	default:
		return forbidden("Only administrators can change roles.")
	}
	return nil
}

// AuthorizeUpdate combines AuthorizeEdit and AuthorizeRoleChange. requested
// is nil when the caller did not ask for a role. A requested role is checked
// even when the actor cannot write the role field, so an escalation attempt
// is refused rather than dropped. The returned set is what the caller may
// actually write; other requested fields must be dropped.
func AuthorizeUpdate(actor domain.Actor, target *domain.User, requested *domain.Role) (FieldSet, error) {
	fields, err := AuthorizeEdit(actor, target)
	if err != nil {
		return 0, err
	}
	if requested != nil {
		if err := AuthorizeRoleChange(actor, target, *requested); err != nil {
			return 0, err
		}
	}
	return fields, nil
}

// AuthorizeRegistration resolves the role of a self-registered account.
// Anything other than an empty value or User is refused.
func AuthorizeRegistration(requested string) (domain.Role, error) {
	switch requested {
	case "", string(domain.RoleUser):
		return domain.RoleUser, nil
	}
	return "", forbidden("Cannot self-register as Admin or Manager. Please register as User.")
}

// AuthorizeCreate gates administrator-initiated account creation.
func AuthorizeCreate(actor domain.Actor, role domain.Role) error {
	if role == domain.RoleAdmin && actor.Role != domain.RoleAdmin {
		return forbidden("Only administrators can create Admin role accounts.")
	}
	if actor.Role != domain.RoleAdmin {
		return forbidden("Access denied. Admin privileges required.")
	}
	return nil
}

// AuthorizeDelete lets Admins remove anyone but themselves and everyone else
// remove only themselves.
func AuthorizeDelete(actor domain.Actor, targetID int64) error {
	self := actor.Is(targetID)

	if actor.Role == domain.RoleAdmin {
		if self {
			return forbidden("Admins cannot delete their own account.")
		}
		return nil
	}
	if !self {
		return forbidden("You can only delete your own account. Only administrators can delete other users.")
	}
	return nil
}

// AuthorizeLogin gates sign-in on account status. Call it only after the
// password has been verified.
func AuthorizeLogin(user *domain.User) error {
	switch user.Status {
	case domain.StatusActive:
		return nil
	case domain.StatusInactive:
		return domain.ErrAccountInactive
	}
	return domain.ErrAccountInactive
}
