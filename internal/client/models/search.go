package models

import (
	"encoding/json"
	"time"
)

// Scope is a visibility tier controlling which documents a query may match.
type Scope string

const (
	ScopePrivate      Scope = "PRIVATE"
	ScopeDepartment   Scope = "DEPARTMENT"
	ScopeOrganization Scope = "ORGANIZATION"
	ScopePublic       Scope = "PUBLIC"
)

// SearchRequest is the multi-scope semantic search payload.
type SearchRequest struct {
	Query    string            `json:"query"`
	Scopes   []Scope           `json:"scopes,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
	NResults int               `json:"nResults,omitempty"`
}

// SearchHit is one scored document match.
type SearchHit struct {
	FileID   string  `json:"fileId"`
	FileName string  `json:"fileName"`
	Snippet  string  `json:"snippet,omitempty"`
	Score    float64 `json:"score"`
	Scope    Scope   `json:"scope"`
}

// SearchResult is the backend response to a multi-scope query.
type SearchResult struct {
	Hits            []SearchHit `json:"hits"`
	ResultCount     int         `json:"resultCount"`
	ExecutionTimeMs int64       `json:"executionTimeMs"`
}

// SearchHistoryEntry is a persisted record of a past query. SearchedScopesJSON
// and FiltersJSON are opaque stringified-JSON fields owned by the backend
// contract; decode them through Scopes and Filters, never ad hoc.
type SearchHistoryEntry struct {
	ID                 string    `json:"id"`
	Query              string    `json:"query"`
	SearchedScopesJSON string    `json:"searchedScopesJson"`
	FiltersJSON        string    `json:"filtersJson"`
	ResultCount        int       `json:"resultCount"`
	ExecutionTimeMs    int64     `json:"executionTimeMs"`
	Success            bool      `json:"success"`
	SearchedAt         time.Time `json:"searchedAt"`
}

// Scopes decodes the stringified scope list. A parse failure degrades to an
// empty list rather than surfacing an error; the raw field stays untouched
// for debugging.
func (e *SearchHistoryEntry) Scopes() []Scope {
	if e.SearchedScopesJSON == "" {
		return nil
	}
	var scopes []Scope
	if err := json.Unmarshal([]byte(e.SearchedScopesJSON), &scopes); err != nil {
		return nil
	}
	return scopes
}

// Filters decodes the stringified filter set, degrading to an empty map on
// malformed input.
func (e *SearchHistoryEntry) Filters() map[string]string {
	if e.FiltersJSON == "" {
		return map[string]string{}
	}
	var filters map[string]string
	if err := json.Unmarshal([]byte(e.FiltersJSON), &filters); err != nil {
		return map[string]string{}
	}
	return filters
}
