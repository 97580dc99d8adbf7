// Package models defines the data shapes exchanged with the Monaco Vault
// backend. All entities are owned and persisted server-side; the client only
// holds transient, invalidatable copies of them.
package models

import (
	"errors"
	"time"
)

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// User is the read-through cached copy of a backend user record.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	UserName       string `json:"userName"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Role           Role   `json:"role"`
	IsActive       bool   `json:"isActive"`
	ActiveTenantID string `json:"activeTenantId,omitempty"`
	AvatarURL      string `json:"avatarUrl,omitempty"`
}

// Validate checks the fields the client relies on unconditionally. It is
// called at the transport boundary so malformed backend payloads fail fast
// instead of propagating empty identifiers into the UI.
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("user: missing id")
	}
	if u.Email == "" {
		return errors.New("user: missing email")
	}
	switch u.Role {
	case RoleUser, RoleAdmin, RoleModerator:
	default:
		return errors.New("user: unknown role " + string(u.Role))
	}
	return nil
}

// LoginResult is returned by login, signup, verify and switch-tenant calls.
// Signup may additionally carry the initial license record.
type LoginResult struct {
	User    *User        `json:"user"`
	Token   string       `json:"token"`
	License *LicenseInfo `json:"license,omitempty"`
}

func (r *LoginResult) Validate() error {
	if r.User == nil {
		return errors.New("login result: missing user")
	}
	if r.Token == "" {
		return errors.New("login result: missing token")
	}
	return r.User.Validate()
}

// UpdateUserRequest carries the mutable fields of a user directory entry.
type UpdateUserRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role,omitempty"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// CreateUserRequest is the admin-side user creation payload.
type CreateUserRequest struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	TenantID string `json:"tenantId,omitempty"`
}

// UserListEntry augments a user with directory metadata.
type UserListEntry struct {
	User
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}
