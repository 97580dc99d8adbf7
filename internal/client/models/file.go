package models

import "time"

// FileMeta describes an uploaded object.
type FileMeta struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	Category     string    `json:"category,omitempty"`
	SizeInBytes  int64     `json:"sizeInBytes"`
	ContentType  string    `json:"contentType,omitempty"`
	StorageKey   string    `json:"storageKey,omitempty"`
	IsPublic     bool      `json:"isPublic"`
	IsDeleted    bool      `json:"isDeleted"`
	UploadedAt   time.Time `json:"uploadedAt"`
	PresignedURL string    `json:"presignedUrl,omitempty"`
}

// FileAccessURL is a time-limited link granting direct access to a stored
// file without further authentication.
type FileAccessURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
