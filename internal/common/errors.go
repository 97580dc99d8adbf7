// Package common defines shared constants and sentinel errors used across
// the vaultctl client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// ErrNoAccessToken is returned by query and mutation helpers that are
	// invoked while no session token is present. The network call is never
	// attempted in that case.
	ErrNoAccessToken = errors.New("no access token")

	// ErrNoSession indicates that no persisted session exists in the
	// durable store.
	ErrNoSession = errors.New("no persisted session")
)
