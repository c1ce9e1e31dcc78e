package tree

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/models"
	"sejf-plikow/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultContentType = "application/octet-stream"

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// CreateFile streams content into the blob store under a fresh blob ref and
// then records the metadata. A failed upload leaves no metadata; failed
// metadata removes the fresh blob again.
func (s *Service) CreateFile(ctx context.Context, ownerID int64, name string, folderID *string, contentType string, content io.Reader) (file *models.File, err error) {
	defer func() { observe("create_file", err) }()

	name, err = normalizeName(name)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	// Fail fast before accepting the body. The check is repeated under the
	// tree lock below.
	if folderID != nil {
		if _, err := s.store.GetFolder(ctx, ownerID, *folderID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrParentNotFound, *folderID)
			}
			return nil, err
		}
	}

	blobRef := uuid.New()
	hasher := sha256.New()
	counter := &countingWriter{}

	if err := s.blobs.Save(blobRef.String(), io.TeeReader(content, io.MultiWriter(hasher, counter))); err != nil {
		s.logger.Error("failed to store file content",
			zap.Int64("owner_id", ownerID),
			zap.String("blob_ref", blobRef.String()),
			zap.Error(err),
		)
		return nil, err
	}
	sum := hex.EncodeToString(hasher.Sum(nil))

	var event *models.Event
	err = s.store.ExecTx(ctx, func(q *database.Queries) error {
		if err := q.LockOwnerTree(ctx, ownerID); err != nil {
			return err
		}
		if folderID != nil {
			if err := requireParent(ctx, q, ownerID, *folderID); err != nil {
				return err
			}
		}

		created, err := q.CreateFile(ctx, database.CreateFileParams{
			ID:          s.newID(),
			OwnerID:     ownerID,
			FolderID:    folderID,
			Name:        name,
			BlobRef:     blobRef,
			SizeBytes:   counter.n,
			ContentType: contentType,
			SHA256:      &sum,
		})
		if err != nil {
			return err
		}
		file = created

		event, err = q.LogEvent(ctx, ownerID, models.EventFileCreated, file)
		return err
	})
	if err != nil {
		if delErr := s.blobs.Delete(blobRef.String()); delErr != nil {
			orphanedBlobsTotal.Inc()
			s.logger.Warn("failed to remove blob of rejected upload",
				zap.String("blob_ref", blobRef.String()),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.publish(ownerID, event)
	s.logger.Debug("file created",
		zap.Int64("owner_id", ownerID),
		zap.String("file_id", file.ID),
		zap.Int64("size", file.SizeBytes),
	)

	return file, nil
}

func (s *Service) GetFile(ctx context.Context, ownerID int64, id string) (*models.File, error) {
	return s.store.GetFile(ctx, ownerID, id)
}

// UpdateFile renames and/or moves a file.
func (s *Service) UpdateFile(ctx context.Context, ownerID int64, id string, update FileUpdate) (file *models.File, err error) {
	defer func() { observe("update_file", err) }()

	var newName *string
	if update.Name != nil {
		name, err := normalizeName(*update.Name)
		if err != nil {
			return nil, err
		}
		newName = &name
	}

	var event *models.Event
	err = s.store.ExecTx(ctx, func(q *database.Queries) error {
		if err := q.LockOwnerTree(ctx, ownerID); err != nil {
			return err
		}

		current, err := q.GetFile(ctx, ownerID, id)
		if err != nil {
			return err
		}

		params := database.UpdateFileParams{
			ID:       id,
			OwnerID:  ownerID,
			Name:     current.Name,
			FolderID: current.FolderID,
		}
		if newName != nil {
			params.Name = *newName
		}
		if update.MoveFolder {
			if update.FolderID != nil {
				if err := requireParent(ctx, q, ownerID, *update.FolderID); err != nil {
					return err
				}
			}
			params.FolderID = update.FolderID
		}

		file, err = q.UpdateFile(ctx, params)
		if err != nil {
			return err
		}

		event, err = q.LogEvent(ctx, ownerID, models.EventFileUpdated, file)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ownerID, event)

	return file, nil
}

// DeleteFile deletes one file and reports 1, following the same
// metadata-first policy as DeleteFolder.
func (s *Service) DeleteFile(ctx context.Context, ownerID int64, id string) (deleted int64, err error) {
	defer func() { observe("delete_file", err) }()

	var blobRef string
	var event *models.Event
	err = s.store.ExecTx(ctx, func(q *database.Queries) error {
		if err := q.LockOwnerTree(ctx, ownerID); err != nil {
			return err
		}

		ref, err := q.MarkFileDeleted(ctx, ownerID, id)
		if err != nil {
			return err
		}
		blobRef = ref

		event, err = q.LogEvent(ctx, ownerID, models.EventFileDeleted, map[string]any{
			"id":      id,
			"deleted": 1,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	s.publish(ownerID, event)
	s.releaseBlobs(ctx, []string{blobRef})

	return 1, nil
}

// OpenFile returns the file metadata and a stream over its content. The
// caller closes the stream.
func (s *Service) OpenFile(ctx context.Context, ownerID int64, id string) (*models.File, io.ReadCloser, error) {
	file, err := s.store.GetFile(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.blobs.Get(file.BlobRef.String())
	if err != nil {
		s.logger.Error("content of active file is unavailable",
			zap.String("file_id", file.ID),
			zap.String("blob_ref", file.BlobRef.String()),
			zap.Error(err),
		)
		return nil, nil, fmt.Errorf("%w: file %s: %w", storage.ErrStorageFailure, id, err)
	}

	return file, content, nil
}
