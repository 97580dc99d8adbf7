package api

import (
	"context"

	"github.com/monacovault/vaultctl/internal/client/models"
)

// LicenseInfo fetches the cached entitlement record.
func (c *Client) LicenseInfo(ctx context.Context) (*models.LicenseInfo, error) {
	out := &models.LicenseInfo{}
	if err := c.t.Get(ctx, "/license/info", out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateLicense runs a point-in-time entitlement check, distinct from the
// cached info record.
func (c *Client) ValidateLicense(ctx context.Context) (*models.LicenseValidation, error) {
	out := &models.LicenseValidation{}
	if err := c.t.Get(ctx, "/license/validate", out); err != nil {
		return nil, err
	}
	return out, nil
}
