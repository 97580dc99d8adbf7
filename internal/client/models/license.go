package models

import "time"

// LicenseInfo is the cached entitlement record.
type LicenseInfo struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsValid   bool      `json:"isValid"`
}

// DaysRemaining computes whole days until expiry relative to now, never
// negative.
func (l *LicenseInfo) DaysRemaining(now time.Time) int {
	d := int(l.ExpiresAt.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// LicenseValidation is a point-in-time validity check, distinct from the
// cached info record.
type LicenseValidation struct {
	IsValid   bool      `json:"isValid"`
	Message   string    `json:"message,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}
