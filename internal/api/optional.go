package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"sejf-plikow/internal/tree"
	"strings"
)

var errEmptyFolderRef = errors.New("folder reference must be an id or null")

// FolderRef is the destination of a PATCH move. The JSON field can be
// absent (stay), null (move to the root) or a folder id.
type FolderRef struct {
	Set bool
	ID  *string
}

// UnmarshalJSON only runs when the field is present in the document.
func (f *FolderRef) UnmarshalJSON(data []byte) error {
	f.Set = true
	f.ID = nil

	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errEmptyFolderRef
	}
	f.ID = &id
	return nil
}

// optionalID treats an empty form or JSON id on create as the root.
func optionalID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	return &trimmed
}

func (req UpdateFolderRequest) folderUpdate() tree.FolderUpdate {
	return tree.FolderUpdate{
		Name:       req.Name,
		MoveParent: req.ParentID.Set,
		ParentID:   req.ParentID.ID,
	}
}

func (req UpdateFileRequest) fileUpdate() tree.FileUpdate {
	return tree.FileUpdate{
		Name:       req.Name,
		MoveFolder: req.FolderID.Set,
		FolderID:   req.FolderID.ID,
	}
}
