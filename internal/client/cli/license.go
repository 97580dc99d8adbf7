package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
)

// License shows the cached entitlement record and runs a fresh validity
// check against the backend.
func (a *App) License(ctx context.Context) error {
	info, err := cache.Lookup(ctx, a.cache, cache.KeyLicense, func(ctx context.Context) (*models.LicenseInfo, error) {
		return a.api.LicenseInfo(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load license: %s\n", err.Error())
		return err
	}

	status := "invalid"
	if info.IsValid {
		status = "valid"
	}
	fmt.Fprintf(a.out, "License %s, %s, expires %s (%d days remaining)\n",
		info.Key, status, info.ExpiresAt.Format(time.DateOnly), info.DaysRemaining(time.Now()))

	validation, err := a.api.ValidateLicense(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Validation check failed: %s\n", err.Error())
		return err
	}
	if validation.IsValid {
		fmt.Fprintf(a.out, "Validation: ok (checked %s)\n", validation.CheckedAt.Format(time.RFC3339))
	} else {
		fmt.Fprintf(a.out, "Validation: FAILED: %s\n", validation.Message)
	}
	return nil
}
