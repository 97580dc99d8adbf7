package api

import (
	"context"

	"github.com/monacovault/vaultctl/internal/client/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"userName"`
}

type switchTenantRequest struct {
	TenantID string `json:"tenantId"`
}

// Login exchanges credentials for a user and a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	out := &models.LoginResult{}
	if err := c.t.Post(ctx, "/users/login", loginRequest{Email: email, Password: password}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Signup creates an account. The response may carry an initial license
// record alongside the user and token.
func (c *Client) Signup(ctx context.Context, email, password, userName string) (*models.LoginResult, error) {
	out := &models.LoginResult{}
	if err := c.t.Post(ctx, "/users/signup", signupRequest{Email: email, Password: password, UserName: userName}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Verify exchanges the stored token for a refreshed token and user.
func (c *Client) Verify(ctx context.Context) (*models.LoginResult, error) {
	out := &models.LoginResult{}
	if err := c.t.Get(ctx, "/users/verify", out); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.t.Post(ctx, "/users/logout", nil, nil)
}

// SwitchTenant rotates the caller's active tenant and returns a new token.
func (c *Client) SwitchTenant(ctx context.Context, tenantID string) (*models.LoginResult, error) {
	out := &models.LoginResult{}
	if err := c.t.Post(ctx, "/users/switch-tenant", switchTenantRequest{TenantID: tenantID}, out); err != nil {
		return nil, err
	}
	return out, nil
}
