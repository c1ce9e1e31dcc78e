package models

import "time"

type Folder struct {
	ID        string     `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	ParentID  *string    `json:"parent_id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// FolderChildren is the direct content of one folder (or of the root).
type FolderChildren struct {
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}
