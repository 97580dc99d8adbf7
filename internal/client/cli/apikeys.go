package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
)

// APIKeys lists credential records. Only key prefixes are ever shown here;
// the full secret exists only in the generation response.
func (a *App) APIKeys(ctx context.Context) error {
	keys, err := cache.Lookup(ctx, a.cache, cache.KeyAPIKeys, func(ctx context.Context) ([]models.APIKey, error) {
		return a.api.ListAPIKeys(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to list API keys: %s\n", err.Error())
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(a.out, "No API keys")
		return nil
	}
	for _, k := range keys {
		state := "active"
		if !k.IsActive {
			state = "revoked"
		}
		expiry := "never"
		if k.ExpiresAt != nil {
			expiry = k.ExpiresAt.Format(time.DateOnly)
		}
		fmt.Fprintf(a.out, "%s  %s  %s...  %s  expires %s\n", k.ID, k.Name, k.KeyPrefix, state, expiry)
	}
	return nil
}

// GenerateKey creates a credential and displays the full secret once. The
// secret is never persisted client-side and cannot be retrieved again.
func (a *App) GenerateKey(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter key name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Key name must not be empty")
		return nil
	}
	scopesLine, err := getSimpleText(a.reader, "Enter scopes (space separated, empty for default)", a.out)
	if err != nil {
		return err
	}
	expiryLine, err := getSimpleText(a.reader, "Expiry in hours (empty for no expiry)", a.out)
	if err != nil {
		return err
	}
	expiryHours := 0
	if expiryLine != "" {
		expiryHours, err = strconv.Atoi(expiryLine)
		if err != nil {
			fmt.Fprintln(a.out, "Expiry must be a number of hours")
			return nil
		}
	}

	var generated *models.GeneratedAPIKey
	err = a.cache.Mutate(ctx, cache.OpAPIKeyGenerate, func(ctx context.Context) error {
		var err error
		generated, err = a.api.GenerateAPIKey(ctx, models.GenerateAPIKeyRequest{
			Name:        name,
			Scopes:      strings.Fields(scopesLine),
			ExpiryHours: expiryHours,
		})
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to generate API key: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Key created: %s\n", generated.Name)
	fmt.Fprintf(a.out, "Secret (shown only once, store it now): %s\n", generated.Key)
	return nil
}

// RevokeKey deactivates a credential after confirmation.
func (a *App) RevokeKey(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter key id", a.out)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Revoke key "+id+"?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	err = a.cache.Mutate(ctx, cache.OpAPIKeyRevoke, func(ctx context.Context) error {
		return a.api.RevokeAPIKey(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to revoke API key: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Key revoked")
	return nil
}

// DeleteKey removes a credential record after confirmation.
func (a *App) DeleteKey(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter key id", a.out)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Delete key "+id+"?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	err = a.cache.Mutate(ctx, cache.OpAPIKeyDelete, func(ctx context.Context) error {
		return a.api.DeleteAPIKey(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to delete API key: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Key deleted")
	return nil
}
