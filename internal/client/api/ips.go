package api

import (
	"context"
	"net/url"

	"github.com/monacovault/vaultctl/internal/client/models"
)

// ListWhitelistedIPs lists all allow-listed origins.
func (c *Client) ListWhitelistedIPs(ctx context.Context) ([]models.WhitelistedIP, error) {
	var out []models.WhitelistedIP
	if err := c.t.Get(ctx, "/ips/whitelist", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddWhitelistedIP adds an origin to the allow-list.
func (c *Client) AddWhitelistedIP(ctx context.Context, req models.AddWhitelistedIPRequest) (*models.WhitelistedIP, error) {
	out := &models.WhitelistedIP{}
	if err := c.t.Post(ctx, "/ips/whitelist", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteWhitelistedIP removes an origin from the allow-list.
func (c *Client) DeleteWhitelistedIP(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/ips/whitelist/"+url.PathEscape(id), nil)
}

// LockWhitelistedIP locks an origin. The operation is idempotent: locking
// an already locked origin leaves it locked.
func (c *Client) LockWhitelistedIP(ctx context.Context, id string) error {
	return c.t.Post(ctx, "/ips/whitelist/"+url.PathEscape(id)+"/lock", nil, nil)
}

// UnlockWhitelistedIP unlocks an origin. Idempotent, like LockWhitelistedIP.
func (c *Client) UnlockWhitelistedIP(ctx context.Context, id string) error {
	return c.t.Post(ctx, "/ips/whitelist/"+url.PathEscape(id)+"/unlock", nil, nil)
}
