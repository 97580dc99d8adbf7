package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
)

// Search runs a multi-scope semantic query. Search results are not cached:
// every query is a fresh backend call.
func (a *App) Search(ctx context.Context) error {
	query, err := getSimpleText(a.reader, "Enter query", a.out)
	if err != nil {
		return err
	}
	if query == "" {
		fmt.Fprintln(a.out, "Query must not be empty")
		return nil
	}
	scopesLine, err := getSimpleText(a.reader, "Enter scopes (PRIVATE DEPARTMENT ORGANIZATION PUBLIC, empty for all)", a.out)
	if err != nil {
		return err
	}
	var scopes []models.Scope
	for _, s := range strings.Fields(scopesLine) {
		scopes = append(scopes, models.Scope(strings.ToUpper(s)))
	}

	result, err := a.api.Search(ctx, models.SearchRequest{Query: query, Scopes: scopes})
	if err != nil {
		fmt.Fprintf(a.out, "Search failed: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "%d result(s) in %dms\n", result.ResultCount, result.ExecutionTimeMs)
	for _, hit := range result.Hits {
		fmt.Fprintf(a.out, "%.3f  %s  [%s]  %s\n", hit.Score, hit.FileName, hit.Scope, hit.Snippet)
	}
	return nil
}

// History lists past queries. Scope and filter fields arrive as stringified
// JSON and are decoded through the models adapter, degrading to empty on
// malformed data.
func (a *App) History(ctx context.Context) error {
	entries, err := cache.Lookup(ctx, a.cache, cache.KeySearchHistory, func(ctx context.Context) ([]models.SearchHistoryEntry, error) {
		return a.api.SearchHistory(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load search history: %s\n", err.Error())
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No search history")
		return nil
	}
	for _, e := range entries {
		scopes := make([]string, 0, len(e.Scopes()))
		for _, s := range e.Scopes() {
			scopes = append(scopes, string(s))
		}
		outcome := "ok"
		if !e.Success {
			outcome = "failed"
		}
		fmt.Fprintf(a.out, "%s  %q  scopes=[%s]  %d result(s)  %dms  %s\n",
			e.ID, e.Query, strings.Join(scopes, ","), e.ResultCount, e.ExecutionTimeMs, outcome)
	}
	return nil
}

// RemoveHistory deletes a single search history entry.
func (a *App) RemoveHistory(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter history entry id", a.out)
	if err != nil {
		return err
	}
	err = a.cache.Mutate(ctx, cache.OpHistoryDelete, func(ctx context.Context) error {
		return a.api.DeleteSearchHistoryEntry(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to delete history entry: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "History entry deleted")
	return nil
}

// ClearHistory deletes all search history after confirmation.
func (a *App) ClearHistory(ctx context.Context) error {
	if !Confirm(a.reader, "Clear all search history?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	err := a.cache.Mutate(ctx, cache.OpHistoryClear, func(ctx context.Context) error {
		return a.api.ClearSearchHistory(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to clear search history: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Search history cleared")
	return nil
}
