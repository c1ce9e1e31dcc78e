package tree

import (
	"errors"
	"sejf-plikow/internal/database"
)

var (
	ErrNotFound       = database.ErrNotFound
	ErrConflict       = database.ErrDuplicateName
	ErrParentNotFound = errors.New("parent folder not found")
	ErrInvalidMove    = errors.New("a folder cannot be moved into itself or one of its descendants")
	ErrValidation     = errors.New("validation failed")
)
