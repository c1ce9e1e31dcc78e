package database

import (
	"context"
	"sejf-plikow/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const fileColumns = `id, owner_id, folder_id, name, blob_ref, size_bytes, content_type, sha256, created_at, updated_at, deleted_at`

func scanFile(row interface{ Scan(...any) error }) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.FolderID,
		&file.Name,
		&file.BlobRef,
		&file.SizeBytes,
		&file.ContentType,
		&file.SHA256,
		&file.CreatedAt,
		&file.UpdatedAt,
		&file.DeletedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &file, nil
}

type CreateFileParams struct {
	ID          string
	OwnerID     int64
	FolderID    *string
	Name        string
	BlobRef     uuid.UUID
	SizeBytes   int64
	ContentType string
	SHA256      *string
}

func (q *Queries) CreateFile(ctx context.Context, arg CreateFileParams) (*models.File, error) {
	query := `
		INSERT INTO files (id, owner_id, folder_id, name, blob_ref, size_bytes, content_type, sha256, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + fileColumns

	row := q.db.QueryRow(ctx, query,
		arg.ID,
		arg.OwnerID,
		arg.FolderID,
		arg.Name,
		arg.BlobRef,
		arg.SizeBytes,
		arg.ContentType,
		arg.SHA256,
		time.Now(),
	)
	return scanFile(row)
}

func (q *Queries) GetFile(ctx context.Context, ownerID int64, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`
	return scanFile(q.db.QueryRow(ctx, query, id, ownerID))
}

type UpdateFileParams struct {
	ID       string
	OwnerID  int64
	Name     string
	FolderID *string
}

func (q *Queries) UpdateFile(ctx context.Context, arg UpdateFileParams) (*models.File, error) {
	query := `
		UPDATE files
		SET name = $3, folder_id = $4, updated_at = $5
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
		RETURNING ` + fileColumns

	row := q.db.QueryRow(ctx, query, arg.ID, arg.OwnerID, arg.Name, arg.FolderID, time.Now())
	return scanFile(row)
}

func (q *Queries) ListFolderFiles(ctx context.Context, ownerID int64, folderID *string) ([]models.File, error) {
	var rows pgx.Rows
	var err error

	if folderID == nil {
		query := `SELECT ` + fileColumns + `
				 FROM files
				 WHERE owner_id = $1 AND folder_id IS NULL AND deleted_at IS NULL
				 ORDER BY name, id`
		rows, err = q.db.Query(ctx, query, ownerID)
	} else {
		query := `SELECT ` + fileColumns + `
				 FROM files
				 WHERE owner_id = $1 AND folder_id = $2 AND deleted_at IS NULL
				 ORDER BY name, id`
		rows, err = q.db.Query(ctx, query, ownerID, *folderID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// MarkFileDeleted marks one Active file Deleted and returns its blob ref.
func (q *Queries) MarkFileDeleted(ctx context.Context, ownerID int64, id string) (string, error) {
	query := `
		UPDATE files
		SET deleted_at = $3, updated_at = $3
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
		RETURNING blob_ref::text
	`
	var blobRef string
	if err := q.db.QueryRow(ctx, query, id, ownerID, time.Now()).Scan(&blobRef); err != nil {
		return "", mapError(err)
	}
	return blobRef, nil
}

// MarkBlobReleased records that the content of a Deleted file is gone from
// the blob store.
func (q *Queries) MarkBlobReleased(ctx context.Context, blobRef string) error {
	query := `
		UPDATE files
		SET blob_released_at = NOW()
		WHERE blob_ref = $1 AND deleted_at IS NOT NULL AND blob_released_at IS NULL
	`
	_, err := q.db.Exec(ctx, query, blobRef)
	return err
}

// UnreleasedBlob is a Deleted file whose content is still in the blob store.
// DeletedAt and FileID form the paging cursor.
type UnreleasedBlob struct {
	BlobRef   string
	FileID    string
	DeletedAt time.Time
}

// ListUnreleasedBlobs returns Deleted files whose content has not been
// removed yet, oldest deletion first, starting after the given cursor.
func (q *Queries) ListUnreleasedBlobs(ctx context.Context, after *UnreleasedBlob, limit int) ([]UnreleasedBlob, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		rows, err = q.db.Query(ctx, `
			SELECT blob_ref::text, id, deleted_at
			FROM files
			WHERE deleted_at IS NOT NULL AND blob_released_at IS NULL
			ORDER BY deleted_at, id
			LIMIT $1
		`, limit)
	} else {
		rows, err = q.db.Query(ctx, `
			SELECT blob_ref::text, id, deleted_at
			FROM files
			WHERE deleted_at IS NOT NULL AND blob_released_at IS NULL
			  AND (deleted_at, id) > ($1, $2)
			ORDER BY deleted_at, id
			LIMIT $3
		`, after.DeletedAt, after.FileID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blobs := []UnreleasedBlob{}
	for rows.Next() {
		var blob UnreleasedBlob
		if err := rows.Scan(&blob.BlobRef, &blob.FileID, &blob.DeletedAt); err != nil {
			return nil, err
		}
		blobs = append(blobs, blob)
	}

	return blobs, rows.Err()
}
