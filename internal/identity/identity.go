// Package identity models the active identity handed to every core
// operation. The identity is established at sign-in outside this service;
// the core consumes it, never mutates it.
package identity

import (
	"context"

	dErrors "rutasegura/pkg/domain-errors"
	"rutasegura/pkg/requestcontext"
)

// Role distinguishes the two user populations with separate feeds.
type Role string

const (
	RoleGuardian Role = "guardian"
	RoleDriver   Role = "driver"
)

// ParseRole validates a role string from claims or requests.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGuardian, RoleDriver:
		return Role(s), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown role: "+s)
	}
}

// Context is the resolved active identity for one request. DependentRUT is
// only populated for guardians, and only when a dependent is selected.
type Context struct {
	UserRUT      string
	Role         Role
	DependentRUT string
}

// FromRequest builds the identity from request-scoped values set by the auth
// middleware. Fails with missing_identity when no user is established, so
// dependent operations never proceed half-resolved.
func FromRequest(ctx context.Context) (Context, error) {
	rut := requestcontext.UserRUT(ctx)
	if rut == "" {
		return Context{}, dErrors.New(dErrors.CodeMissingIdentity, "no active user")
	}
	role, err := ParseRole(requestcontext.Role(ctx))
	if err != nil {
		return Context{}, dErrors.New(dErrors.CodeMissingIdentity, "no role for active user")
	}
	return Context{UserRUT: rut, Role: role}, nil
}
