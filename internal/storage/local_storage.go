package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	basePath string
}

var _ BlobStore = (*LocalStorage)(nil)

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// getPathFromRef shards blobs as <root>/ab/cd/abcd... so no single directory
// grows unbounded.
func (ls *LocalStorage) getPathFromRef(ref string) (string, error) {
	if len(ref) < 4 || strings.ContainsAny(ref, `/\.`) {
		return "", fmt.Errorf("%w: invalid blob ref %q", ErrStorageFailure, ref)
	}
	return filepath.Join(ls.basePath, ref[0:2], ref[2:4], ref), nil
}

// Save writes into a temp file next to the target and renames it into place,
// so a failed write never leaves a partial blob behind.
func (ls *LocalStorage) Save(ref string, data io.Reader) error {
	filePath, err := ls.getPathFromRef(ref)
	if err != nil {
		return err
	}
	dir := filepath.Dir(filePath)

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	tmp, err := os.CreateTemp(dir, ref+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write blob %s: %w", ErrStorageFailure, ref, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: sync blob %s: %v", ErrStorageFailure, ref, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return nil
}

func (ls *LocalStorage) Get(ref string) (io.ReadCloser, error) {
	filePath, err := ls.getPathFromRef(ref)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return file, nil
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (ls *LocalStorage) Delete(ref string) error {
	filePath, err := ls.getPathFromRef(ref)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("%w: %v", ErrStorageFailure, err)
}
