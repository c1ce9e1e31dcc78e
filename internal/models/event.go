package models

import (
	"encoding/json"
	"time"
)

const (
	EventFolderCreated = "folder_created"
	EventFolderUpdated = "folder_updated"
	EventFolderDeleted = "folder_deleted"
	EventFileCreated   = "file_created"
	EventFileUpdated   = "file_updated"
	EventFileDeleted   = "file_deleted"
)

type Event struct {
	ID        int64           `json:"id" example:"123"`
	EventType string          `json:"event_type" example:"folder_created"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload" swaggertype:"object"`
}
