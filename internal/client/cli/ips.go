package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
)

// IPs lists the allow-listed origins through the query cache.
func (a *App) IPs(ctx context.Context) error {
	ips, err := cache.Lookup(ctx, a.cache, cache.KeyWhitelist, func(ctx context.Context) ([]models.WhitelistedIP, error) {
		return a.api.ListWhitelistedIPs(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to list whitelisted IPs: %s\n", err.Error())
		return err
	}
	if len(ips) == 0 {
		fmt.Fprintln(a.out, "Whitelist is empty")
		return nil
	}
	for _, ip := range ips {
		state := "active"
		if !ip.IsActive {
			state = "inactive"
		}
		if ip.IsLocked {
			state += ", locked"
		}
		fmt.Fprintf(a.out, "%s  %s  (%s)  added %s  %s\n",
			ip.ID, ip.IPAddress, state, ip.CreatedAt.Format(time.DateOnly), ip.Description)
	}
	return nil
}

// AddIP adds an origin to the allow-list.
func (a *App) AddIP(ctx context.Context) error {
	addr, err := getSimpleText(a.reader, "Enter IP address", a.out)
	if err != nil {
		return err
	}
	if addr == "" {
		fmt.Fprintln(a.out, "IP address must not be empty")
		return nil
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}
	err = a.cache.Mutate(ctx, cache.OpIPAdd, func(ctx context.Context) error {
		_, err := a.api.AddWhitelistedIP(ctx, models.AddWhitelistedIPRequest{
			IPAddress:   addr,
			Description: description,
		})
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to add IP: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "IP added to whitelist")
	return nil
}

// RemoveIP deletes an origin from the allow-list after confirmation.
func (a *App) RemoveIP(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter whitelist entry id", a.out)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Remove whitelist entry "+id+"?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	err = a.cache.Mutate(ctx, cache.OpIPDelete, func(ctx context.Context) error {
		return a.api.DeleteWhitelistedIP(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to remove IP: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "IP removed from whitelist")
	return nil
}

// LockIP locks an origin. Locking an already locked origin succeeds and
// leaves it locked.
func (a *App) LockIP(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter whitelist entry id", a.out)
	if err != nil {
		return err
	}
	err = a.cache.Mutate(ctx, cache.OpIPLock, func(ctx context.Context) error {
		return a.api.LockWhitelistedIP(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to lock IP: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "IP locked")
	return nil
}

// UnlockIP unlocks an origin. Idempotent, like LockIP.
func (a *App) UnlockIP(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter whitelist entry id", a.out)
	if err != nil {
		return err
	}
	err = a.cache.Mutate(ctx, cache.OpIPUnlock, func(ctx context.Context) error {
		return a.api.UnlockWhitelistedIP(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to unlock IP: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "IP unlocked")
	return nil
}
