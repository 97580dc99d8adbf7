package models

import "time"

// TenantInfo is an organization-scoped container with quotas, feature flags
// and usage counters.
type TenantInfo struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	MaxUsers            int       `json:"maxUsers"`
	MaxStorageQuota     int64     `json:"maxStorageQuota"`
	MaxFileSize         int64     `json:"maxFileSize"`
	EnableInference     bool      `json:"enableInference"`
	EnableSearch        bool      `json:"enableSearch"`
	EnablePublicSharing bool      `json:"enablePublicSharing"`
	CurrentUserCount    int       `json:"currentUserCount"`
	CurrentStorageUsed  int64     `json:"currentStorageUsed"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TenantRequest carries the writable tenant fields for create and update.
type TenantRequest struct {
	Name                string `json:"name"`
	MaxUsers            int    `json:"maxUsers,omitempty"`
	MaxStorageQuota     int64  `json:"maxStorageQuota,omitempty"`
	MaxFileSize         int64  `json:"maxFileSize,omitempty"`
	EnableInference     bool   `json:"enableInference"`
	EnableSearch        bool   `json:"enableSearch"`
	EnablePublicSharing bool   `json:"enablePublicSharing"`
}

// TenantStats summarizes per-tenant usage for the admin dashboard.
type TenantStats struct {
	TenantID     string `json:"tenantId"`
	UserCount    int    `json:"userCount"`
	FileCount    int    `json:"fileCount"`
	StorageUsed  int64  `json:"storageUsed"`
	SearchCount  int64  `json:"searchCount"`
	UploadsToday int    `json:"uploadsToday"`
}
