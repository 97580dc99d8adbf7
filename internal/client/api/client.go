// Package api is the typed endpoint catalog for the Monaco Vault backend:
// exactly one method per backend capability, each binding a fixed path
// template, HTTP verb, request shape and response shape.
//
// Methods add no business logic beyond path, verb and payload construction,
// propagate transport errors unchanged, and never retry; retry policy lives
// in the cache layer.
package api

import (
	"github.com/monacovault/vaultctl/internal/client/transport"
)

// Defaults for optional parameters, mirroring the backend contract.
const (
	DefaultAuditPage     = 0
	DefaultAuditPageSize = 50
	DefaultNResults      = 5
	DefaultAccessTTLHrs  = 24
)

// Client exposes the backend operations over a transport client.
type Client struct {
	t *transport.Client
}

// New binds the catalog to a transport client.
func New(t *transport.Client) *Client {
	return &Client{t: t}
}
