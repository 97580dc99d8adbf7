package models

import "time"

// WhitelistedIP is a network origin allowed to reach the service.
// IsActive and IsLocked are independent flags; lock and unlock are explicit
// idempotent operations, not a toggle.
type WhitelistedIP struct {
	ID          string    `json:"id"`
	IPAddress   string    `json:"ipAddress"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	IsLocked    bool      `json:"isLocked"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AddWhitelistedIPRequest is the allow-list creation payload.
type AddWhitelistedIPRequest struct {
	IPAddress   string `json:"ipAddress"`
	Description string `json:"description,omitempty"`
}
