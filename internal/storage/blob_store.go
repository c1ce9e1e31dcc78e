package storage

import (
	"errors"
	"io"
)

var (
	ErrStorageFailure = errors.New("storage failure")
	ErrBlobNotFound   = errors.New("blob not found")
)

// BlobStore holds raw file content addressed by an opaque reference that is
// independent of any file id or display name.
type BlobStore interface {
	Save(ref string, data io.Reader) error
	Get(ref string) (io.ReadCloser, error)
	Delete(ref string) error
}
