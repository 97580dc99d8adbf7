package models

import "time"

// APIKey is a stored credential record. Only the hash lives server-side;
// the client ever sees the short prefix used for identification.
type APIKey struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"keyPrefix"`
	Scopes     []string   `json:"scopes"`
	IsActive   bool       `json:"isActive"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// GeneratedAPIKey carries the one-time full secret returned at creation.
// The Key value is never retrievable again; callers must not persist it
// beyond in-memory display state.
type GeneratedAPIKey struct {
	APIKey
	Key string `json:"key"`
}

// GenerateAPIKeyRequest is the creation payload. ExpiryHours of 0 means the
// key never expires.
type GenerateAPIKeyRequest struct {
	Name        string   `json:"name"`
	Scopes      []string `json:"scopes,omitempty"`
	ExpiryHours int      `json:"expiryHours,omitempty"`
}
