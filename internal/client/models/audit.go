package models

import "time"

// AuditLogType classifies an audit record outcome.
type AuditLogType string

const (
	AuditSuccess AuditLogType = "SUCCESS"
	AuditFailure AuditLogType = "FAILURE"
)

// AuditLog is an immutable, append-only record. No update or delete endpoint
// exists for it.
type AuditLog struct {
	ID             string       `json:"id"`
	Email          string       `json:"email"`
	Action         string       `json:"action"`
	Type           AuditLogType `json:"type"`
	Timestamp      time.Time    `json:"timestamp"`
	AdditionalData string       `json:"additionalData,omitempty"`
}

// AuditLogPage is one page of the audit trail.
type AuditLogPage struct {
	Logs       []AuditLog `json:"logs"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalCount int64      `json:"totalCount"`
}
