package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

const DefaultRole = "User"

type CreateUserRequest struct {
	OID     string
	UPN     string
	Role    string
	HomeIDs []string
}

type HomeAssignment struct {
	CareHomeID string
	Role       string
}

type Service interface {
	// EnsureUser records the authenticated caller, creating the row on
	// first sight and refreshing upn and display name afterwards.
	EnsureUser(ctx context.Context, principal Principal) (AppUser, error)
	// HasHomeAccess reports whether the given user holds any role at
	// the care home. Admin bypass is the caller's concern.
	HasHomeAccess(ctx context.Context, userID, careHomeID snowflake.ID) (bool, error)
	ListUsers(ctx context.Context) ([]UserWithRoles, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserWithRoles, error)
	ReplaceHomeRoles(ctx context.Context, userID string, assignments []HomeAssignment) ([]RoleWithHome, error)
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidOID  = errors.New("invalid_oid")
	ErrInvalidRole = errors.New("invalid_role")
	ErrInvalidHome = errors.New("invalid_care_home")
	ErrNotFound    = errors.New("user_not_found")
)
