package api

import (
	"context"
	"net/url"

	"github.com/monacovault/vaultctl/internal/client/models"
)

// ListAPIKeys lists the caller's credential records. Responses only ever
// contain the key prefix, never the full secret.
func (c *Client) ListAPIKeys(ctx context.Context) ([]models.APIKey, error) {
	var out []models.APIKey
	if err := c.t.Get(ctx, "/apikeys", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateAPIKey creates a credential and returns its full secret exactly
// once. The secret is not retrievable again after this response is consumed.
func (c *Client) GenerateAPIKey(ctx context.Context, req models.GenerateAPIKeyRequest) (*models.GeneratedAPIKey, error) {
	out := &models.GeneratedAPIKey{}
	if err := c.t.Post(ctx, "/apikeys", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RevokeAPIKey deactivates a credential without deleting its record.
func (c *Client) RevokeAPIKey(ctx context.Context, id string) error {
	return c.t.Post(ctx, "/apikeys/"+url.PathEscape(id)+"/revoke", nil, nil)
}

// DeleteAPIKey removes a credential record entirely.
func (c *Client) DeleteAPIKey(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/apikeys/"+url.PathEscape(id), nil)
}
