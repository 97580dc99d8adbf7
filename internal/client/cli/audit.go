package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/monacovault/vaultctl/internal/client/api"
	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
)

// Audit prints one page of the audit trail. Only the first page is served
// from the cache; explicit page requests always hit the backend.
func (a *App) Audit(ctx context.Context) error {
	pageLine, err := getSimpleText(a.reader, "Page (empty for first)", a.out)
	if err != nil {
		return err
	}

	var page *models.AuditLogPage
	if pageLine == "" {
		page, err = cache.Lookup(ctx, a.cache, cache.KeyAuditLogs, func(ctx context.Context) (*models.AuditLogPage, error) {
			return a.api.AuditLogs(ctx, api.DefaultAuditPage, api.DefaultAuditPageSize)
		})
	} else {
		var n int
		n, err = strconv.Atoi(pageLine)
		if err != nil {
			fmt.Fprintln(a.out, "Page must be a number")
			return nil
		}
		page, err = a.api.AuditLogs(ctx, n, api.DefaultAuditPageSize)
	}
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load audit logs: %s\n", err.Error())
		return err
	}

	if len(page.Logs) == 0 {
		fmt.Fprintln(a.out, "No audit records")
		return nil
	}
	for _, l := range page.Logs {
		fmt.Fprintf(a.out, "%s  %-7s  %s  %s\n",
			l.Timestamp.Format(time.RFC3339), l.Type, l.Email, l.Action)
	}
	fmt.Fprintf(a.out, "Page %d (%d per page), %d record(s) total\n", page.Page, page.PageSize, page.TotalCount)
	return nil
}
