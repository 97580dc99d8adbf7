package api

import (
	"context"
	"net/url"

	"github.com/monacovault/vaultctl/internal/client/models"
)

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type assignTenantRequest struct {
	TenantID string `json:"tenantId"`
}

// ListTenants lists all tenants. Admin only.
func (c *Client) ListTenants(ctx context.Context) ([]models.TenantInfo, error) {
	var out []models.TenantInfo
	if err := c.t.Get(ctx, "/admin/tenants", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTenant creates a tenant. Admin only.
func (c *Client) CreateTenant(ctx context.Context, req models.TenantRequest) (*models.TenantInfo, error) {
	out := &models.TenantInfo{}
	if err := c.t.Post(ctx, "/admin/tenants", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTenant updates a tenant's quotas and feature flags. Admin only.
func (c *Client) UpdateTenant(ctx context.Context, id string, req models.TenantRequest) (*models.TenantInfo, error) {
	out := &models.TenantInfo{}
	if err := c.t.Put(ctx, "/admin/tenants/"+url.PathEscape(id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTenant removes a tenant. Admin only. The client issues the call even
// for the tenant the caller is actively switched into; any resulting
// inconsistency is a backend concern.
func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/admin/tenants/"+url.PathEscape(id), nil)
}

// TenantStats fetches usage counters for one tenant. Admin only.
func (c *Client) TenantStats(ctx context.Context, id string) (*models.TenantStats, error) {
	out := &models.TenantStats{}
	if err := c.t.Get(ctx, "/admin/tenants/"+url.PathEscape(id)+"/stats", out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers lists the user directory. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserListEntry, error) {
	var out []models.UserListEntry
	if err := c.t.Get(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates a directory entry. Admin only.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	out := &models.User{}
	if err := c.t.Post(ctx, "/users", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser updates a directory entry. Admin only.
func (c *Client) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	out := &models.User{}
	if err := c.t.Put(ctx, "/users/"+url.PathEscape(id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes a directory entry. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/users/"+url.PathEscape(id), nil)
}

// ResetUserPassword sets a new password for a user. Admin only.
func (c *Client) ResetUserPassword(ctx context.Context, id, newPassword string) error {
	return c.t.Post(ctx, "/users/"+url.PathEscape(id)+"/reset-password", resetPasswordRequest{NewPassword: newPassword}, nil)
}

// AssignUserToTenant moves a user into a tenant. Admin only.
func (c *Client) AssignUserToTenant(ctx context.Context, userID, tenantID string) error {
	return c.t.Post(ctx, "/users/"+url.PathEscape(userID)+"/assign-tenant", assignTenantRequest{TenantID: tenantID}, nil)
}
