package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
)

// SwitchTenant re-authenticates the session against another tenant. All
// cached data is tenant-scoped, so a successful switch drops the entire
// cache.
func (a *App) SwitchTenant(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter tenant id", a.out)
	if err != nil {
		return err
	}
	if id == "" {
		fmt.Fprintln(a.out, "Tenant id must not be empty")
		return nil
	}
	err = a.cache.Mutate(ctx, cache.OpTenantSwitch, func(ctx context.Context) error {
		_, err := a.sess.SwitchTenant(ctx, id)
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to switch tenant: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Switched to tenant %s\n", id)
	return nil
}

// Tenants lists all tenants. Admin only.
func (a *App) Tenants(ctx context.Context) error {
	tenants, err := cache.Lookup(ctx, a.cache, cache.KeyAdminTenants, func(ctx context.Context) ([]models.TenantInfo, error) {
		return a.api.ListTenants(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to list tenants: %s\n", err.Error())
		return err
	}
	if len(tenants) == 0 {
		fmt.Fprintln(a.out, "No tenants")
		return nil
	}
	for _, t := range tenants {
		fmt.Fprintf(a.out, "%s  %s  users %d/%d  storage %d/%d bytes\n",
			t.ID, t.Name, t.CurrentUserCount, t.MaxUsers, t.CurrentStorageUsed, t.MaxStorageQuota)
	}
	return nil
}

// CreateTenant prompts for tenant attributes and creates it. Admin only.
func (a *App) CreateTenant(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter tenant name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Tenant name must not be empty")
		return nil
	}
	maxUsersLine, err := getSimpleText(a.reader, "Max users (empty for default)", a.out)
	if err != nil {
		return err
	}
	maxUsers := 0
	if maxUsersLine != "" {
		maxUsers, err = strconv.Atoi(maxUsersLine)
		if err != nil {
			fmt.Fprintln(a.out, "Max users must be a number")
			return nil
		}
	}

	err = a.cache.Mutate(ctx, cache.OpTenantCreate, func(ctx context.Context) error {
		_, err := a.api.CreateTenant(ctx, models.TenantRequest{
			Name:         name,
			MaxUsers:     maxUsers,
			EnableSearch: true,
		})
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to create tenant: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Tenant %s created\n", name)
	return nil
}

// UpdateTenant edits a tenant's name and user quota. Admin only.
func (a *App) UpdateTenant(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter tenant id", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter tenant name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Tenant name must not be empty")
		return nil
	}
	maxUsersLine, err := getSimpleText(a.reader, "Max users (empty for default)", a.out)
	if err != nil {
		return err
	}
	maxUsers := 0
	if maxUsersLine != "" {
		maxUsers, err = strconv.Atoi(maxUsersLine)
		if err != nil {
			fmt.Fprintln(a.out, "Max users must be a number")
			return nil
		}
	}

	err = a.cache.Mutate(ctx, cache.OpTenantUpdate, func(ctx context.Context) error {
		_, err := a.api.UpdateTenant(ctx, id, models.TenantRequest{
			Name:         name,
			MaxUsers:     maxUsers,
			EnableSearch: true,
		})
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to update tenant: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Tenant %s updated\n", id)
	return nil
}

// DeleteTenant removes a tenant after confirmation. Admin only.
func (a *App) DeleteTenant(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter tenant id", a.out)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Delete tenant "+id+" and all its data?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	err = a.cache.Mutate(ctx, cache.OpTenantDelete, func(ctx context.Context) error {
		return a.api.DeleteTenant(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to delete tenant: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Tenant deleted")
	return nil
}

// TenantStats shows usage counters for one tenant. Admin only. Stats are
// point-in-time and bypass the cache.
func (a *App) TenantStats(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter tenant id", a.out)
	if err != nil {
		return err
	}
	stats, err := a.api.TenantStats(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load tenant stats: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Tenant %s: %d user(s), %d file(s), %d bytes stored, %d search(es), %d upload(s) today\n",
		stats.TenantID, stats.UserCount, stats.FileCount, stats.StorageUsed, stats.SearchCount, stats.UploadsToday)
	return nil
}
