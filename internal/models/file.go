package models

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	ID          string     `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	FolderID    *string    `json:"folder_id"`
	Name        string     `json:"name"`
	BlobRef     uuid.UUID  `json:"-"`
	SizeBytes   int64      `json:"size"`
	ContentType string     `json:"content_type"`
	SHA256      *string    `json:"sha256,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}
