package tree

import (
	"context"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/models"

	"go.uber.org/zap"
)

func (s *Service) CreateFolder(ctx context.Context, ownerID int64, name string, parentID *string) (folder *models.Folder, err error) {
	defer func() { observe("create_folder", err) }()

	name, err = normalizeName(name)
	if err != nil {
		return nil, err
	}

	var event *models.Event
	err = s.store.ExecTx(ctx, func(q *database.Queries) error {
		if err := q.LockOwnerTree(ctx, ownerID); err != nil {
			return err
		}
		if parentID != nil {
			if err := requireParent(ctx, q, ownerID, *parentID); err != nil {
				return err
			}
		}

		created, err := q.CreateFolder(ctx, database.CreateFolderParams{
			ID:       s.newID(),
			OwnerID:  ownerID,
			ParentID: parentID,
			Name:     name,
		})
		if err != nil {
			return err
		}
		folder = created

		event, err = q.LogEvent(ctx, ownerID, models.EventFolderCreated, folder)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ownerID, event)
	s.logger.Debug("folder created", zap.Int64("owner_id", ownerID), zap.String("folder_id", folder.ID))

	return folder, nil
}

func (s *Service) GetFolder(ctx context.Context, ownerID int64, id string) (*models.Folder, error) {
	return s.store.GetFolder(ctx, ownerID, id)
}

// UpdateFolder renames and/or moves a folder. The ancestry check runs under
// the owner's tree lock, so two concurrent moves cannot jointly form a cycle.
func (s *Service) UpdateFolder(ctx context.Context, ownerID int64, id string, update FolderUpdate) (folder *models.Folder, err error) {
	defer func() { observe("update_folder", err) }()

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

		current, err := q.GetFolder(ctx, ownerID, id)
		if err != nil {
			return err
		}

		params := database.UpdateFolderParams{
			ID:       id,
			OwnerID:  ownerID,
			Name:     current.Name,
			ParentID: current.ParentID,
		}
		if newName != nil {
			params.Name = *newName
		}
		if update.MoveParent {
			if update.ParentID != nil {
				if err := ensureNotDescendant(ctx, q, ownerID, id, *update.ParentID); err != nil {
					return err
				}
			}
			params.ParentID = update.ParentID
		}

		folder, err = q.UpdateFolder(ctx, params)
		if err != nil {
			return err
		}

		event, err = q.LogEvent(ctx, ownerID, models.EventFolderUpdated, folder)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ownerID, event)
	s.logger.Debug("folder updated",
		zap.Int64("owner_id", ownerID),
		zap.String("folder_id", folder.ID),
		zap.Stringp("parent_id", folder.ParentID),
	)

	return folder, nil
}

// DeleteFolder deletes the folder with everything below it and returns the
// number of folders and files deleted. Metadata goes first, in one
// transaction; blob removal follows and may leave orphaned blobs behind for
// ReleaseOrphanedBlobs, never dangling metadata.
func (s *Service) DeleteFolder(ctx context.Context, ownerID int64, id string) (deleted int64, err error) {
	defer func() { observe("delete_folder", err) }()

	var blobRefs []string
	var event *models.Event
	err = s.store.ExecTx(ctx, func(q *database.Queries) error {
		if err := q.LockOwnerTree(ctx, ownerID); err != nil {
			return err
		}

		folders, refs, err := q.MarkSubtreeDeleted(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if folders == 0 {
			return ErrNotFound
		}
		blobRefs = refs
		deleted = folders + int64(len(refs))

		event, err = q.LogEvent(ctx, ownerID, models.EventFolderDeleted, map[string]any{
			"id":      id,
			"deleted": deleted,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	s.publish(ownerID, event)
	s.releaseBlobs(ctx, blobRefs)
	s.logger.Info("folder deleted",
		zap.Int64("owner_id", ownerID),
		zap.String("folder_id", id),
		zap.Int64("deleted", deleted),
	)

	return deleted, nil
}

// ListChildren returns the direct content of folderID, or of the root when
// folderID is nil.
func (s *Service) ListChildren(ctx context.Context, ownerID int64, folderID *string) (*models.FolderChildren, error) {
	if folderID != nil {
		if _, err := s.store.GetFolder(ctx, ownerID, *folderID); err != nil {
			return nil, err
		}
	}

	folders, err := s.store.ListChildFolders(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	files, err := s.store.ListFolderFiles(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	return &models.FolderChildren{Folders: folders, Files: files}, nil
}
