package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

// Roles lists every valid role, most privileged first.
var Roles = []Role{RoleAdmin, RoleManager, RoleUser}

// ParseRole converts a raw string into a Role. Matching is exact.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(s), nil
	}
	return "", NewError(ErrValidation, fmt.Sprintf("role must be one of: Admin, Manager, User (got %q)", s))
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Status tells whether an account may sign in.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s), nil
	}
	return "", NewError(ErrValidation, fmt.Sprintf("status must be one of: Active, Inactive (got %q)", s))
}

// User models an account managed by the service.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Actor is the authenticated caller of a request, as carried by its token.
type Actor struct {
	ID    int64
	Email string
	Role  Role
}

func (a Actor) Is(id int64) bool { return a.ID == id }
