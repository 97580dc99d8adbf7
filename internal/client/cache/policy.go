package cache

import (
	"strings"
	"time"
)

// Key is a hierarchical cache key, e.g. Key{"admin", "tenants"}.
// Invalidating a key also invalidates everything nested under it.
type Key []string

// NewKey builds a Key from its segments.
func NewKey(parts ...string) Key {
	return Key(parts)
}

func (k Key) String() string {
	return strings.Join(k, "/")
}

// Well-known resource keys.
var (
	KeyAdminTenants  = Key{"admin", "tenants"}
	KeyAdminUsers    = Key{"admin", "users"}
	KeyUserFiles     = Key{"user", "files"}
	KeyWhitelist     = Key{"ips", "whitelist"}
	KeyAPIKeys       = Key{"apikeys"}
	KeyLicense       = Key{"license", "info"}
	KeySearchHistory = Key{"search", "history"}
	KeyAuditLogs     = Key{"audit", "logs"}
)

// Mutation operation names, the vertices of the invalidation graph.
const (
	OpTenantCreate      = "tenant.create"
	OpTenantUpdate      = "tenant.update"
	OpTenantDelete      = "tenant.delete"
	OpTenantSwitch      = "tenant.switch"
	OpUserCreate        = "user.create"
	OpUserUpdate        = "user.update"
	OpUserDelete        = "user.delete"
	OpUserResetPassword = "user.resetPassword"
	OpUserAssignTenant  = "user.assignTenant"
	OpIPAdd             = "ip.add"
	OpIPDelete          = "ip.delete"
	OpIPLock            = "ip.lock"
	OpIPUnlock          = "ip.unlock"
	OpAPIKeyGenerate    = "apikey.generate"
	OpAPIKeyRevoke      = "apikey.revoke"
	OpAPIKeyDelete      = "apikey.delete"
	OpFileUpload        = "file.upload"
	OpFileDelete        = "file.delete"
	OpHistoryDelete     = "history.delete"
	OpHistoryClear      = "history.clear"
)

// Policy is the explicit, testable caching policy: per-resource TTLs, the
// automatic retry count, and the invalidation graph mapping each mutation
// to the keys whose data it affects. A nil key list means "invalidate
// everything"; tenant switching uses it, since nearly every resource is
// tenant-scoped.
type Policy struct {
	DefaultTTL  time.Duration
	TTLs        map[string]time.Duration
	Retries     int
	Invalidates map[string][]Key
}

// DefaultPolicy mirrors the dashboard's observed behavior: a one-minute
// default TTL, longer TTLs for the slow-moving tenant and user directories,
// exactly one retry, and per-mutation invalidation.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: time.Minute,
		TTLs: map[string]time.Duration{
			KeyAdminTenants.String(): 5 * time.Minute,
			KeyAdminUsers.String():   5 * time.Minute,
			KeyLicense.String():      10 * time.Minute,
		},
		Retries: 1,
		Invalidates: map[string][]Key{
			OpTenantCreate:      {KeyAdminTenants},
			OpTenantUpdate:      {KeyAdminTenants},
			OpTenantDelete:      {KeyAdminTenants, KeyAdminUsers},
			OpTenantSwitch:      nil,
			OpUserCreate:        {KeyAdminUsers},
			OpUserUpdate:        {KeyAdminUsers},
			OpUserDelete:        {KeyAdminUsers},
			OpUserResetPassword: {KeyAdminUsers},
			OpUserAssignTenant:  {KeyAdminUsers, KeyAdminTenants},
			OpIPAdd:             {KeyWhitelist},
			OpIPDelete:          {KeyWhitelist},
			OpIPLock:            {KeyWhitelist},
			OpIPUnlock:          {KeyWhitelist},
			OpAPIKeyGenerate:    {KeyAPIKeys},
			OpAPIKeyRevoke:      {KeyAPIKeys},
			OpAPIKeyDelete:      {KeyAPIKeys},
			OpFileUpload:        {KeyUserFiles},
			OpFileDelete:        {KeyUserFiles},
			OpHistoryDelete:     {KeySearchHistory},
			OpHistoryClear:      {KeySearchHistory},
		},
	}
}

// ttlFor resolves the TTL for a key string: exact match first, then the
// longest configured prefix, then the default.
func (p Policy) ttlFor(ks string) time.Duration {
	if ttl, ok := p.TTLs[ks]; ok {
		return ttl
	}
	best := ""
	for prefix := range p.TTLs {
		if strings.HasPrefix(ks, prefix+"/") && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		return p.TTLs[best]
	}
	return p.DefaultTTL
}
