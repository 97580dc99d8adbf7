package api

import (
	"context"
	"net/url"

	"github.com/monacovault/vaultctl/internal/client/models"
)

// Search runs a scoped semantic search. NResults of 0 or less falls back to
// DefaultNResults.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	if req.NResults <= 0 {
		req.NResults = DefaultNResults
	}
	out := &models.SearchResult{}
	if err := c.t.Post(ctx, "/query/multi-scope", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchHistory lists the caller's persisted past queries.
func (c *Client) SearchHistory(ctx context.Context) ([]models.SearchHistoryEntry, error) {
	var out []models.SearchHistoryEntry
	if err := c.t.Get(ctx, "/search-history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSearchHistoryEntry removes a single history record.
func (c *Client) DeleteSearchHistoryEntry(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/search-history/"+url.PathEscape(id), nil)
}

// ClearSearchHistory removes all history records of the caller.
func (c *Client) ClearSearchHistory(ctx context.Context) error {
	return c.t.Delete(ctx, "/search-history", nil)
}
