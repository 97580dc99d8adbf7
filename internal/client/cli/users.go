package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
	"github.com/monacovault/vaultctl/internal/common"
)

// Users lists the user directory. Admin only.
func (a *App) Users(ctx context.Context) error {
	users, err := cache.Lookup(ctx, a.cache, cache.KeyAdminUsers, func(ctx context.Context) ([]models.UserListEntry, error) {
		return a.api.ListUsers(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to list users: %s\n", err.Error())
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}
	for _, u := range users {
		state := "active"
		if !u.IsActive {
			state = "disabled"
		}
		lastLogin := "never"
		if u.LastLoginAt != nil {
			lastLogin = u.LastLoginAt.Format(time.DateOnly)
		}
		fmt.Fprintf(a.out, "%s  %s  %s  %s  last login %s\n", u.ID, u.Email, u.Role, state, lastLogin)
	}
	return nil
}

// AddUser creates a directory entry. Admin only.
func (a *App) AddUser(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	roleLine, err := getSimpleText(a.reader, "Role (USER, MODERATOR, ADMIN; empty for USER)", a.out)
	if err != nil {
		return err
	}
	role := models.RoleUser
	if roleLine != "" {
		role = models.Role(strings.ToUpper(roleLine))
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.cache.Mutate(ctx, cache.OpUserCreate, func(ctx context.Context) error {
		_, err := a.api.CreateUser(ctx, models.CreateUserRequest{
			Email:    email,
			UserName: userName,
			Password: string(password),
			Role:     role,
		})
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to create user: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "User %s created\n", email)
	return nil
}

// UpdateUser changes a directory entry's role. Admin only.
func (a *App) UpdateUser(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}
	roleLine, err := getSimpleText(a.reader, "New role (USER, MODERATOR, ADMIN)", a.out)
	if err != nil {
		return err
	}
	if roleLine == "" {
		fmt.Fprintln(a.out, "Role must not be empty")
		return nil
	}

	err = a.cache.Mutate(ctx, cache.OpUserUpdate, func(ctx context.Context) error {
		_, err := a.api.UpdateUser(ctx, id, models.UpdateUserRequest{
			Role: models.Role(strings.ToUpper(roleLine)),
		})
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to update user: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "User %s updated\n", id)
	return nil
}

// RemoveUser deletes a directory entry after confirmation. Admin only.
func (a *App) RemoveUser(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Delete user "+id+"?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	err = a.cache.Mutate(ctx, cache.OpUserDelete, func(ctx context.Context) error {
		return a.api.DeleteUser(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to delete user: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "User deleted")
	return nil
}

// ResetPassword sets a new password for a user. Admin only.
func (a *App) ResetPassword(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.cache.Mutate(ctx, cache.OpUserResetPassword, func(ctx context.Context) error {
		return a.api.ResetUserPassword(ctx, id, string(password))
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to reset password: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Password reset")
	return nil
}

// AssignTenant moves a user into a tenant. Admin only.
func (a *App) AssignTenant(ctx context.Context) error {
	userID, err := getSimpleText(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}
	tenantID, err := getSimpleText(a.reader, "Enter tenant id", a.out)
	if err != nil {
		return err
	}
	err = a.cache.Mutate(ctx, cache.OpUserAssignTenant, func(ctx context.Context) error {
		return a.api.AssignUserToTenant(ctx, userID, tenantID)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to assign tenant: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "User %s assigned to tenant %s\n", userID, tenantID)
	return nil
}
