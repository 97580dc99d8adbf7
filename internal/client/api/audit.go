package api

import (
	"context"
	"fmt"

	"github.com/monacovault/vaultctl/internal/client/models"
)

// AuditLogs fetches one page of the audit trail. Negative page falls back
// to DefaultAuditPage; pageSize of 0 or less falls back to
// DefaultAuditPageSize.
func (c *Client) AuditLogs(ctx context.Context, page, pageSize int) (*models.AuditLogPage, error) {
	if page < 0 {
		page = DefaultAuditPage
	}
	if pageSize <= 0 {
		pageSize = DefaultAuditPageSize
	}
	out := &models.AuditLogPage{}
	path := fmt.Sprintf("/audit/logs?page=%d&pageSize=%d", page, pageSize)
	if err := c.t.Get(ctx, path, out); err != nil {
		return nil, err
	}
	return out, nil
}
