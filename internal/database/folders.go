package database

import (
	"context"
	"sejf-plikow/internal/models"
	"time"

	"github.com/jackc/pgx/v5"
)

const folderColumns = `id, owner_id, parent_id, name, created_at, updated_at, deleted_at`

func scanFolder(row interface{ Scan(...any) error }) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
		&folder.DeletedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &folder, nil
}

type CreateFolderParams struct {
	ID       string
	OwnerID  int64
	ParentID *string
	Name     string
}

func (q *Queries) CreateFolder(ctx context.Context, arg CreateFolderParams) (*models.Folder, error) {
	query := `
		INSERT INTO folders (id, owner_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + folderColumns

	row := q.db.QueryRow(ctx, query, arg.ID, arg.OwnerID, arg.ParentID, arg.Name, time.Now())
	return scanFolder(row)
}

// GetFolder returns an Active folder owned by ownerID. Deleted folders and
// folders of other owners are reported as ErrNotFound alike.
func (q *Queries) GetFolder(ctx context.Context, ownerID int64, id string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`
	return scanFolder(q.db.QueryRow(ctx, query, id, ownerID))
}

type UpdateFolderParams struct {
	ID       string
	OwnerID  int64
	Name     string
	ParentID *string
}

func (q *Queries) UpdateFolder(ctx context.Context, arg UpdateFolderParams) (*models.Folder, error) {
	query := `
		UPDATE folders
		SET name = $3, parent_id = $4, updated_at = $5
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
		RETURNING ` + folderColumns

	row := q.db.QueryRow(ctx, query, arg.ID, arg.OwnerID, arg.Name, arg.ParentID, time.Now())
	return scanFolder(row)
}

// ListChildFolders returns the Active direct subfolders of parentID, or the
// root folders when parentID is nil, ordered by name then id.
func (q *Queries) ListChildFolders(ctx context.Context, ownerID int64, parentID *string) ([]models.Folder, error) {
	var rows pgx.Rows
	var err error

	if parentID == nil {
		query := `SELECT ` + folderColumns + `
				 FROM folders
				 WHERE owner_id = $1 AND parent_id IS NULL AND deleted_at IS NULL
				 ORDER BY name, id`
		rows, err = q.db.Query(ctx, query, ownerID)
	} else {
		query := `SELECT ` + folderColumns + `
				 FROM folders
				 WHERE owner_id = $1 AND parent_id = $2 AND deleted_at IS NULL
				 ORDER BY name, id`
		rows, err = q.db.Query(ctx, query, ownerID, *parentID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, *folder)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return folders, nil
}

// MarkSubtreeDeleted marks the folder, every Active descendant folder and
// every Active file inside them Deleted in a single statement. It returns the
// number of folders marked and the blob refs of the files marked.
func (q *Queries) MarkSubtreeDeleted(ctx context.Context, ownerID int64, folderID string) (int64, []string, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id
			FROM folders
			WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL

			UNION

			SELECT f.id
			FROM folders f
			JOIN subtree s ON f.parent_id = s.id
			WHERE f.owner_id = $2 AND f.deleted_at IS NULL
		),
		deleted_folders AS (
			UPDATE folders
			SET deleted_at = $3, updated_at = $3
			WHERE id IN (SELECT id FROM subtree)
			RETURNING id
		),
		deleted_files AS (
			UPDATE files
			SET deleted_at = $3, updated_at = $3
			WHERE owner_id = $2 AND deleted_at IS NULL AND folder_id IN (SELECT id FROM subtree)
			RETURNING blob_ref
		)
		SELECT 'folder', id FROM deleted_folders
		UNION ALL
		SELECT 'file', blob_ref::text FROM deleted_files
	`
	rows, err := q.db.Query(ctx, query, folderID, ownerID, time.Now())
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var folders int64
	blobRefs := []string{}
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return 0, nil, err
		}
		if kind == "folder" {
			folders++
		} else {
			blobRefs = append(blobRefs, value)
		}
	}

	if err = rows.Err(); err != nil {
		return 0, nil, err
	}

	return folders, blobRefs, nil
}
